package httpserver

import (
	"github.com/Skotchmaster/phast_auth/internal/router"
)

// Routes builds the public route table. Order matters: the first pattern
// matching a path decides between dispatch and 405.
func Routes(users *UserHTTP) *router.Router {
	b := router.NewBuilder()

	b.GET("/", Home)
	b.Group("/users", func(g *router.Builder) {
		g.POST("/create", users.Create)
		g.POST("/login", users.Login)
		g.POST("/refresh", users.Refresh)
		g.GET("/fetch", users.Fetch)
		g.PUT("/update", users.Update)
		g.DELETE("/delete", users.Delete)
	})

	return b.Build(NotFound, MethodNotAllowed)
}

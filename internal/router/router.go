// Package router is the ordered route table behind the public HTTP surface.
//
// Routes are matched by URI first and by method second: the first pattern
// that matches the path decides the outcome, so a method mismatch on that
// route yields 405 even when a later route would accept both.
package router

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	placeholder = "{id}"
	idPattern   = `([\w-]+)`

	// ContextKeyRoute holds the matched pattern on the echo context.
	ContextKeyRoute = "route_pattern"
)

type HandlerFunc func(c echo.Context, args []string) error

type MethodNotAllowedFunc func(c echo.Context, requested, allowed string) error

type Route struct {
	Method  string
	Pattern string
	Handler HandlerFunc

	re *regexp.Regexp
}

type Builder struct {
	prefix string
	routes []Route
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) GET(uri string, h HandlerFunc)    { b.add(http.MethodGet, uri, h) }
func (b *Builder) POST(uri string, h HandlerFunc)   { b.add(http.MethodPost, uri, h) }
func (b *Builder) PUT(uri string, h HandlerFunc)    { b.add(http.MethodPut, uri, h) }
func (b *Builder) DELETE(uri string, h HandlerFunc) { b.add(http.MethodDelete, uri, h) }

// Group registers the routes added by fn under prefix. The prefix is
// restored once fn returns, so groups nest.
func (b *Builder) Group(prefix string, fn func(g *Builder)) {
	previous := b.prefix
	b.prefix += prefix
	defer func() { b.prefix = previous }()

	fn(b)
}

func (b *Builder) add(method, uri string, h HandlerFunc) {
	pattern := b.prefix + uri
	b.routes = append(b.routes, Route{
		Method:  method,
		Pattern: pattern,
		Handler: h,
		re:      compile(pattern),
	})
}

// Build freezes the registered routes. Later changes to b do not affect the
// returned router.
func (b *Builder) Build(notFound echo.HandlerFunc, methodNotAllowed MethodNotAllowedFunc) *Router {
	routes := make([]Route, len(b.routes))
	copy(routes, b.routes)
	return &Router{
		routes:           routes,
		notFound:         notFound,
		methodNotAllowed: methodNotAllowed,
	}
}

func compile(pattern string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, regexp.QuoteMeta(placeholder), idPattern)
	return regexp.MustCompile("^" + quoted + "$")
}

type Router struct {
	routes           []Route
	notFound         echo.HandlerFunc
	methodNotAllowed MethodNotAllowedFunc
}

type Match struct {
	Route         *Route
	Args          []string
	MethodAllowed bool
}

// Found reports whether any pattern matched the path.
func (m Match) Found() bool { return m.Route != nil }

func (r *Router) Match(method, path string) Match {
	path = NormalizePath(path)
	for i := range r.routes {
		rt := &r.routes[i]
		sub := rt.re.FindStringSubmatch(path)
		if sub == nil {
			continue
		}
		return Match{
			Route:         rt,
			Args:          sub[1:],
			MethodAllowed: rt.Method == method,
		}
	}
	return Match{}
}

func (r *Router) Handle(c echo.Context) error {
	req := c.Request()
	m := r.Match(req.Method, req.URL.Path)

	switch {
	case !m.Found():
		return r.notFound(c)
	case !m.MethodAllowed:
		c.Set(ContextKeyRoute, m.Route.Pattern)
		return r.methodNotAllowed(c, req.Method, m.Route.Method)
	default:
		c.Set(ContextKeyRoute, m.Route.Pattern)
		return m.Route.Handler(c, m.Args)
	}
}

// Routes returns a copy of the route table in registration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// Mount installs r as the catch-all handler of e. Routes registered directly
// on e keep priority.
func (r *Router) Mount(e *echo.Echo) {
	e.Any("/", r.Handle)
	e.Any("/*", r.Handle)
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/Skotchmaster/phast_auth/internal/config"
	"github.com/Skotchmaster/phast_auth/internal/db"
)

func main() {
	flag.Usage = func() {
		log.Printf("usage: %s [up|down|status|version|redo|reset] [args]", os.Args[0])
	}
	flag.Parse()

	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	if cfg.DBDriver != db.DriverPostgres {
		log.Fatalf("migrator supports postgres only, got DB_DRIVER=%q", cfg.DBDriver)
	}

	sqlDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	if err := db.RunGoose(ctx, sqlDB, command, args...); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("migrations: %s OK", command)
}

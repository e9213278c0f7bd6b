package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"courier-chat/config"
	"courier-chat/pkg/database"
)

const usage = `
Courier Chat - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Run all SQL migrations
  status      Show database connection status
  seed        Seed the database with development data

Flags:
  -migrations string   Path to migrations directory (default "migrations")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	switch command {
	case "up":
		if err := database.ApplyRawMigrations(ctx, pool, *migrationsDir); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		if err := database.HealthCheck(pool); err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		log.Printf("Connected to %s@%s:%s/%s", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "seed":
		if err := database.ApplyRawMigrations(ctx, pool, *migrationsDir); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if err := database.SeedDev(ctx, pool, cfg.BcryptCost); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Println("Development data seeded")
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// Package main provides a CLI tool for running database migrations.
package main

import (
	"flag"
	"log"

	"investrack/internal/config"
	"investrack/pkg/db"
)

func main() {
	action := flag.String("action", "up", "Migration action: up, down, version")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	databaseURL := cfg.DB.URL()

	switch *action {
	case "up":
		log.Println("Running migrations...")
		if err := db.RunMigrations(databaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations completed successfully")
	case "down":
		log.Println("Rolling back last migration...")
		if err := db.RollbackMigrations(databaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("Rollback completed successfully")
	case "version":
		version, dirty, err := db.MigrationVersion(databaseURL, cfg.MigrationsPath)
		if err != nil {
			log.Fatalf("Failed to read version: %v", err)
		}
		log.Printf("Schema version: %d (dirty: %t)", version, dirty)
	default:
		log.Fatalf("Unknown action: %s", *action)
	}
}

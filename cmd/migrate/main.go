package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/realahmed45/future-bali-frontend/internal/config"
	"github.com/realahmed45/future-bali-frontend/internal/repository/postgres"
	"github.com/realahmed45/future-bali-frontend/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Database.Enabled() {
		fmt.Fprintln(os.Stderr, "DB_HOST is not set; nothing to migrate")
		os.Exit(1)
	}

	// Connect to the postgres database first to create the target database if needed
	admin := cfg.Database
	admin.DBName = "postgres"
	adminDB, err := sql.Open("postgres", postgres.DSN(admin))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to postgres database: %v\n", err)
		os.Exit(1)
	}
	defer adminDB.Close()

	var exists bool
	err = adminDB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Database.DBName,
	).Scan(&exists)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to check database existence: %v\n", err)
		os.Exit(1)
	}
	if !exists {
		fmt.Printf("Database '%s' does not exist. Creating...\n", cfg.Database.DBName)
		if _, err := adminDB.Exec(fmt.Sprintf("CREATE DATABASE %q", cfg.Database.DBName)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
			os.Exit(1)
		}
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// An explicit file overrides the embedded schema
	var schema []byte
	if len(os.Args) > 1 {
		schema, err = os.ReadFile(os.Args[1])
	} else {
		schema, err = migrations.FS.ReadFile(migrations.InitSchema)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read migration file: %v\n", err)
		os.Exit(1)
	}

	if err := postgres.Migrate(context.Background(), db, string(schema)); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration completed successfully!")
}

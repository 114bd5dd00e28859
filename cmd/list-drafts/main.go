package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/config"
	"github.com/realahmed45/future-bali-frontend/internal/repository/postgres"
)

func main() {
	limit := flag.Int("limit", 50, "number of drafts to list")
	offset := flag.Int("offset", 0, "drafts to skip")
	events := flag.Bool("events", false, "print the event log of each draft")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Database.Enabled() {
		fmt.Fprintln(os.Stderr, "DB_HOST is not set; drafts are only kept in the server's memory")
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	drafts, err := repos.Draft.ListRecent(ctx, *limit, *offset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list drafts: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Listing %d drafts:\n\n", len(drafts))
	for _, cp := range drafts {
		fmt.Printf("Draft: %s\n", cp.DraftID)
		fmt.Printf("  Step: %s\n", cp.Step)
		if cp.CartID != "" {
			fmt.Printf("  Cart ID: %s\n", cp.CartID)
		}
		if cp.OrderID != "" {
			fmt.Printf("  Order ID: %s\n", cp.OrderID)
		}
		fmt.Printf("  Total: %.2f\n", cp.Draft.TotalCost())
		fmt.Printf("  Updated At: %s\n", cp.UpdatedAt.Format("2006-01-02 15:04:05"))

		if !*events {
			continue
		}
		log, err := repos.DraftEvent.GetByDraftID(ctx, cp.DraftID)
		if err != nil {
			fmt.Printf("  (failed to load events: %v)\n", err)
			continue
		}
		for _, e := range log {
			fmt.Printf("    %s  %s\n", e.CreatedAt.Format("15:04:05"), e.EventType)
		}
	}
}

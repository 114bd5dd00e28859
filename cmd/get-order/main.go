package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/config"
	"github.com/realahmed45/future-bali-frontend/internal/session"
	"github.com/realahmed45/future-bali-frontend/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/get-order/main.go <order_id>")
		os.Exit(1)
	}
	orderID := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Reuses the token the server persisted, if any
	store, err := storage.Open(cfg.Storage.Path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open local storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sess, err := session.New(store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to restore session: %v\n", err)
		os.Exit(1)
	}
	if _, ok := sess.Token(); !ok {
		fmt.Println("No session token stored; requesting anonymously")
	}

	client := backend.NewClient(cfg.Backend.BaseURL, sess, logger)
	ctx := context.Background()
	order, err := client.GetOrder(ctx, orderID, backend.WithTimeout(cfg.Backend.FormTimeout))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch order %s: %v\n", orderID, err)
		os.Exit(1)
	}

	fmt.Printf("Order: %s\n", order.ID)
	fmt.Printf("Status: %s\n", order.Status)
	fmt.Printf("Total: %.2f\n", order.TotalAmount)
	if order.BasePackage != nil {
		fmt.Printf("Package: %s\n", order.BasePackage.Title)
	}
	fmt.Printf("Add-ons: %d\n", len(order.SelectedAddOns))
	fmt.Printf("Signers: %d\n", len(order.UserInfo))
	fmt.Printf("Contract: %s\n\n", client.ContractDownloadURL(order.ID))

	raw, _ := json.MarshalIndent(order, "", "  ")
	fmt.Println(string(raw))
}

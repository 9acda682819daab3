package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vas_import/internal/config"
	"vas_import/internal/handlers"
	"vas_import/internal/ports"
	"vas_import/internal/server"
)

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.Init(setupCtx)
	defer cfg.Close(context.Background())

	if err := cfg.CheckConnections(setupCtx); err != nil {
		log.Fatalf("connection check failed: %v", err)
	}
	fmt.Println("all connections OK")

	h := handlers.New(cfg)

	// `vas_import batch [user-id]` runs one input-directory sweep and exits;
	// without arguments the HTTP server starts.
	if len(os.Args) > 1 && os.Args[1] == "batch" {
		ctx := runCtx
		if len(os.Args) > 2 {
			ctx = context.WithValue(ctx, ports.CtxUserID, os.Args[2])
		}
		res, err := h.Importer.RunBatch(ctx)
		if err != nil {
			log.Fatalf("batch failed: %v", err)
		}
		fmt.Printf("batch done: scanned=%d processed=%d failed=%d\n", res.Scanned, res.Processed, res.Failed)
		return
	}

	srv := server.NewServer(cfg.Port, h)
	if err := srv.Run(runCtx); err != nil {
		log.Fatal(err)
	}
}

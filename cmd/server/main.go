package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override environment variables
	port := flag.String("port", cfg.Server.Port, "Server port")
	host := flag.String("host", cfg.Server.Host, "Listen address")
	driver := flag.String("storage", cfg.Storage.Driver, "Storage driver (memory, disk, postgres, etcd)")
	dir := flag.String("storage-dir", cfg.Storage.Dir, "Directory for the disk storage driver")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development mode (console logs, debug level)")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Server.Host = *host
	cfg.Storage.Driver = *driver
	cfg.Storage.Dir = *dir
	if *dev && !cfg.Logging.Development {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Println("Shutting down gracefully...")
		if err := srv.Close(context.Background()); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		if err != nil {
			srv.Close(context.Background())
			log.Fatalf("Server error: %v", err)
		}
	}
}

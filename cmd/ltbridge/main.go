// Command ltbridge runs the HTTP gateway that translates LogQL and TraceQL
// queries into backend SQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/caibirdme/ltbridge/internal/api"
	"github.com/caibirdme/ltbridge/internal/backend"
	"github.com/caibirdme/ltbridge/internal/config"
	"github.com/caibirdme/ltbridge/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.LogLevel)
	log.Info("starting ltbridge", "environment", cfg.Environment, "port", cfg.Port)

	executor := backend.NoopExecutor{}

	server := api.NewServer(cfg, log, executor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatal("server failed to start", "error", err)
	}

	log.Info("ltbridge shutdown complete")
}

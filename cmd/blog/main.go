package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog/internal/config"
	"blog/internal/consul"
	"blog/internal/logger"
	"blog/internal/server"
)

func gracefulShutdown(apiServer *http.Server, registry *consul.Client, serviceID string, done chan bool) {
	// Create context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	slog.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	if registry != nil {
		if err := registry.Deregister(serviceID); err != nil {
			slog.Warn("Failed to deregister from Consul", "error", err)
		} else {
			slog.Info("Deregistered from Consul", "service_id", serviceID)
		}
	}

	// The server has 5 seconds to finish the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	logger.SetDefault(log)

	log.Info("Starting Blog Service...",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"kafka", cfg.Kafka.Enabled,
		"consul", cfg.Consul.Enabled)

	app, err := server.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to initialize server", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	var registry *consul.Client
	var serviceID string
	if cfg.Consul.Enabled {
		registry, serviceID, err = register(cfg)
		if err != nil {
			log.Error("Failed to register with Consul", "error", err)
			app.Close()
			os.Exit(1)
		}
		log.Info("Registered with Consul", "service_id", serviceID)
	}

	apiServer := app.HTTPServer()

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, registry, serviceID, done)

	log.Info("Blog Service listening", "addr", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("HTTP server error", "error", err)
		app.Close()
		os.Exit(1)
	}

	<-done
	log.Info("Graceful shutdown complete.")
}

func register(cfg *config.Config) (*consul.Client, string, error) {
	client, err := consul.NewClient(cfg.Consul)
	if err != nil {
		return nil, "", err
	}

	svc := consul.BlogService(cfg.Server.Host, cfg.Server.Port)

	// Drop a stale registration left by a crashed instance with the same ID
	_ = client.Deregister(svc.ID)

	if err := client.Register(svc); err != nil {
		return nil, "", err
	}
	return client, svc.ID, nil
}

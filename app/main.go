package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/contest-comb/app/api"
	"github.com/lysyi3m/contest-comb/app/cfg"
	"github.com/lysyi3m/contest-comb/app/pipeline"
	"github.com/lysyi3m/contest-comb/app/platforms"
	"github.com/lysyi3m/contest-comb/app/render"
	"github.com/lysyi3m/contest-comb/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Contest Comb server", "version", appCfg.Version)

	platformsConfig, err := platforms.Load(appCfg.PlatformsFile)
	if err != nil {
		log.Fatalf("Failed to load platforms configuration: %v", err)
	}

	httpClient := &http.Client{}

	contestSources := []sources.Source{
		sources.NewCodeforces(httpClient),
		sources.NewCodeChef(httpClient),
		sources.NewAtCoder(httpClient),
	}
	for _, feedSource := range platformsConfig.Feeds {
		contestSources = append(contestSources, sources.NewFeed(httpClient, feedSource))
	}
	slog.Info("Contest sources configured", "count", len(contestSources))

	contestPipeline := pipeline.New(contestSources, platformsConfig)
	renderer := render.NewRenderer(platformsConfig)

	handler := api.NewHandler(contestPipeline, renderer, platformsConfig, len(contestSources))
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("API endpoints available",
			"contests", fmt.Sprintf("http://localhost:%s/contests", appCfg.Port),
			"message", fmt.Sprintf("http://localhost:%s/contests/message", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Contest Comb server shutdown complete")
}

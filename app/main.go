package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulsecrew/creator-pulse/app/api"
	"github.com/pulsecrew/creator-pulse/app/cfg"
	"github.com/pulsecrew/creator-pulse/app/database"
	"github.com/pulsecrew/creator-pulse/app/monitor"
	"github.com/pulsecrew/creator-pulse/app/platform"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
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

	slog.Info("Starting Creator Pulse", "version", appCfg.Version)

	db, err := database.NewConnection(
		appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	platformSettings, err := platform.LoadSettings(appCfg.PlatformsFile)
	if err != nil {
		slog.Error("Failed to load platform settings", "file", appCfg.PlatformsFile, "error", err)
		os.Exit(1)
	}

	campaignRepo := database.NewCampaignRepository(db)
	profileRepo := database.NewProfileRepository(db)
	reviewRepo := database.NewReviewRepository(db)

	httpClient := &http.Client{}
	fetchers := buildFetchers(httpClient, platformSettings, appCfg.UserAgent)
	slog.Info("Platform fetchers configured", "count", len(fetchers))

	scanner := monitor.NewScanner(campaignRepo, profileRepo, reviewRepo, fetchers, appCfg.WorkerCount)
	scheduler := monitor.NewScheduler(scanner, time.Duration(appCfg.ScanInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(campaignRepo, profileRepo, reviewRepo, scheduler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

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

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

// buildFetchers creates one fetcher per enabled platform
func buildFetchers(httpClient *http.Client, settings map[string]platform.Settings, userAgent string) []platform.Fetcher {
	var fetchers []platform.Fetcher

	if s := settings[platform.PlatformInstagram]; s.Enabled {
		fetchers = append(fetchers, platform.NewInstagramFetcher(httpClient, s, userAgent))
	}
	if s := settings[platform.PlatformTikTok]; s.Enabled {
		fetchers = append(fetchers, platform.NewTikTokFetcher(httpClient, s, userAgent))
	}
	if s := settings[platform.PlatformYouTube]; s.Enabled {
		fetchers = append(fetchers, platform.NewYouTubeFetcher(httpClient, s, userAgent))
	}
	if s := settings[platform.PlatformTwitter]; s.Enabled {
		fetchers = append(fetchers, platform.NewTwitterFetcher(httpClient, s, userAgent))
	}

	return fetchers
}

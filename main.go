package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"simplstream/api"
	"simplstream/config"
	"simplstream/handlers"
	"simplstream/services/export"
	"simplstream/services/metadata"
	"simplstream/services/preferences"
	"simplstream/services/profiles"
	"simplstream/services/ratings"
	"simplstream/services/watchlist"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the settings file")
	flag.Parse()

	manager := config.NewManager(*configPath)
	settings, err := manager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	setupLogging(settings.Log)

	if settings.Metadata.TMDBAPIKey == "" {
		log.Fatal("a TMDB API key is required; set TMDB_API_KEY or edit the settings file")
	}

	profilesSvc, err := profiles.NewService(settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to initialize profiles: %v", err)
	}
	watchlistSvc, err := watchlist.NewService(settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to initialize watchlist: %v", err)
	}
	ratingsSvc, err := ratings.NewService(settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to initialize ratings: %v", err)
	}
	preferencesSvc, err := preferences.NewService(settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to initialize preferences: %v", err)
	}
	metadataSvc, err := metadata.NewService(settings.Metadata.TMDBAPIKey, settings.Metadata.Language)
	if err != nil {
		log.Fatalf("failed to initialize metadata client: %v", err)
	}
	exportSvc := export.NewService(profilesSvc, watchlistSvc, ratingsSvc, preferencesSvc)

	remover := handlers.DataRemover{
		Watchlist:   watchlistSvc,
		Ratings:     ratingsSvc,
		Preferences: preferencesSvc,
	}

	router := api.NewRouter(api.Handlers{
		Profiles:    handlers.NewProfilesHandler(profilesSvc, remover),
		Watchlist:   handlers.NewWatchlistHandler(watchlistSvc, profilesSvc),
		History:     handlers.NewHistoryHandler(ratingsSvc, profilesSvc),
		Preferences: handlers.NewPreferencesHandler(preferencesSvc, profilesSvc),
		Home:        handlers.NewHomeHandler(metadataSvc, profilesSvc, profilesSvc, ratingsSvc, watchlistSvc),
		Detail:      handlers.NewDetailHandler(metadataSvc, ratingsSvc, watchlistSvc),
		Export:      handlers.NewExportHandler(exportSvc),
	})

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		log.Printf("simplstream listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func defaultConfigPath() string {
	if path := os.Getenv("SIMPLSTREAM_CONFIG"); path != "" {
		return path
	}
	return "cache/settings.json"
}

func setupLogging(cfg config.LogSettings) {
	if cfg.File == "" {
		return
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
}

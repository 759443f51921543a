// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the GramSetu portal server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gramsetu/internal/cache"
	"gramsetu/internal/config"
	"gramsetu/internal/content"
	"gramsetu/internal/database"
	"gramsetu/internal/handlers"
	"gramsetu/internal/media"
	"gramsetu/internal/middleware"
	"gramsetu/internal/router"
	"gramsetu/internal/session"
	"gramsetu/internal/storage"
	"gramsetu/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL and apply pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed default settings and starter categories (no-op once seeded).
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (route cache + session backend).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	sessionStore := session.NewStore(valkeyClient)
	routeCache := cache.NewRouteCache(valkeyClient, cache.DefaultRouteTTL)

	// Data stores.
	contentStore := store.NewContentStore(db)
	categoryStore := store.NewCategoryStore(db)
	settingStore := store.NewSettingStore(db)
	directoryStore := store.NewDirectoryStore(db)

	// S3-compatible object storage (optional — portal works without it,
	// media uploads are just disabled).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Warn("s3 storage not configured — media uploads disabled")
	} else {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	}

	// Media linker cleans up replaced and orphaned images in the background.
	var deleter media.ObjectDeleter
	if storageClient != nil {
		deleter = storageClient
	}
	mediaLinker := media.NewLinker(deleter)

	// The content lifecycle service behind both handler groups.
	svc := content.NewService(
		contentStore, categoryStore, settingStore,
		mediaLinker, routeCache, middleware.SessionAuthorizer{},
	)

	adminHandlers := handlers.NewAdmin(svc, categoryStore, settingStore, directoryStore, sessionStore, storageClient, routeCache)
	publicHandlers := handlers.NewPublic(svc, settingStore, directoryStore, routeCache)

	r := router.New(sessionStore, adminHandlers, publicHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight media deletions finish before exiting.
	mediaLinker.Wait()

	slog.Info("server stopped gracefully")
}

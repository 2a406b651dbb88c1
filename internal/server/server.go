// Package server boots foodhub: configuration, database, cache, storage,
// the audit trail, and the HTTP and gRPC listeners.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/foodhub/app/routes"
	"github.com/shashiranjanraj/foodhub/app/services"
	"github.com/shashiranjanraj/foodhub/config"
	"github.com/shashiranjanraj/foodhub/pkg/audit"
	"github.com/shashiranjanraj/foodhub/pkg/cache"
	"github.com/shashiranjanraj/foodhub/pkg/database"
	"github.com/shashiranjanraj/foodhub/pkg/event"
	"github.com/shashiranjanraj/foodhub/pkg/grpc"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
	"github.com/shashiranjanraj/foodhub/pkg/storage"
)

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 15 * time.Second

// auditMemoryLimit caps the in-process audit trail.
const auditMemoryLimit = 10000

// Start runs until ctx is cancelled (SIGINT/SIGTERM from the CLI), then
// drains both listeners.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close()

	closeCache := connectCache(ctx)
	defer closeCache()

	if err := storage.Connect(ctx); err != nil {
		return err
	}
	disk, err := storage.Default()
	if err != nil {
		return err
	}

	bus := event.New()
	closeAudit := connectAudit(ctx, bus)
	defer closeAudit()

	handler, err := Handler(routes.Deps{DB: database.DB, Events: bus, Disk: disk})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 2)

	var gs *grpc.Server
	if port := config.GRPCPort(); port != "" && !strings.EqualFold(port, "off") {
		gs, err = grpc.New(net.JoinHostPort("", port))
		if err != nil {
			return err
		}
		go func() { errc <- gs.Serve() }()
	}

	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
			return
		}
		errc <- nil
	}()
	if gs != nil {
		gs.SetServing(dbReady(ctx))
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errc:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
		_ = srv.Close()
		if gs != nil {
			gs.Stop()
		}
		return err
	}

	if gs != nil {
		gs.SetServing(false)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	if gs != nil {
		gs.Stop()
	}
	logger.Info("server stopped")
	return nil
}

// connectCache installs Redis when it answers and keeps the in-process
// store otherwise. The returned func closes the Redis client.
func connectCache(ctx context.Context) func() {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	store, err := cache.Connect(pingCtx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("redis unavailable, using in-memory cache", "addr", config.RedisAddr(), "error", err)
		return func() {}
	}
	cache.Use(store)
	logger.Info("cache connected", "driver", "redis", "addr", config.RedisAddr())
	return func() { _ = store.Close() }
}

// connectAudit subscribes the order lifecycle events to MongoDB when
// AUDIT_MONGO_URI is set, to a bounded in-memory trail otherwise. The
// returned func releases the sink.
func connectAudit(ctx context.Context, bus *event.Bus) func() {
	if uri := config.AuditMongoURI(); uri != "" {
		sink, err := audit.NewMongoSink(ctx, uri, config.AuditMongoDB())
		if err == nil {
			audit.Subscribe(bus, sink, services.OrderEvents...)
			logger.Info("audit trail connected", "driver", "mongo", "db", config.AuditMongoDB())
			return func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = sink.Close(closeCtx)
			}
		}
		logger.Warn("audit: mongo unavailable, keeping trail in memory", "error", err)
	}

	audit.Subscribe(bus, audit.NewMemorySink(auditMemoryLimit), services.OrderEvents...)
	return func() {}
}

// dbReady reports whether the database answers a ping.
func dbReady(ctx context.Context) bool {
	sqlDB, err := database.DB.DB()
	if err != nil {
		return false
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		logger.Warn("database ping failed", "error", err)
		return false
	}
	return true
}

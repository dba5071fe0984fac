// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/catalog"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/config"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/database"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/handler"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/repository"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/service"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/store"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/store/postgres"
	"github.com/Shivanand-hulikatti/cosmo-events/internal/store/sqlite"
)

func main() {
	log.SetPrefix("[EVENTS] ")
	ctx := context.Background()

	// ── 1. Load configuration ─────────────────────────────────────────────
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ── 2. Open the durable store ─────────────────────────────────────────
	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()
	log.Printf("✓ Using %s store", cfg.StoreBackend)

	// ── 3. Wire up layers ─────────────────────────────────────────────────
	platform, err := service.NewPlatform(ctx,
		repository.NewUserRepository(kv),
		catalog.Default(),
		service.WithPaymentCodes(cfg.ReferenceCode, cfg.OverrideCode),
		service.WithLogger(log.Default()),
	)
	if err != nil {
		log.Fatalf("platform: %v", err)
	}
	eventHandler := handler.NewEventHandler(platform)
	router := handler.NewRouter(eventHandler, cfg.WebDir)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("✓ Server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}

// openStore returns the configured key-value backend and a function that
// releases it.
func openStore(ctx context.Context, cfg config.Config) (store.KV, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemory(), func() {}, nil
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		kv, err := postgres.New(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return kv, pool.Close, nil
	default:
		kv, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return kv, closeLogged(kv, "sqlite"), nil
	}
}

func closeLogged(c io.Closer, name string) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Printf("close %s store: %v", name, err)
		}
	}
}

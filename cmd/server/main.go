package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"repair-backend/internal/changelog"
	"repair-backend/internal/config"
	"repair-backend/internal/database"
	"repair-backend/internal/db"
	"repair-backend/internal/handlers"
	"repair-backend/internal/health"
	h "repair-backend/internal/http"
	"repair-backend/internal/middleware"
	"repair-backend/internal/services"
	"repair-backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Pick the durable backend. A backend that is unreachable at startup is a
	// warning, not a failure: the shop keeps working from memory and the next
	// successful flush persists everything.
	var durable store.DurableStore
	var appender changelog.Appender
	var lister changelog.Lister
	var ping health.PingFunc
	backend := cfg.Storage.Backend

	switch backend {
	case "postgres":
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Printf("[Main] postgres unavailable, running memory-only: %v", err)
			backend = "memory"
			break
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("schema setup failed: %v", err)
		}
		durable = store.NewPostgresStore(pool)
		pgLog := changelog.NewPostgresLog(pool)
		appender, lister = pgLog, pgLog
		ping = pool.Ping
		defer pool.Close()

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Printf("[Main] redis unavailable, running memory-only: %v", err)
			client.Close()
			backend = "memory"
			break
		}
		durable = store.NewRedisStore(client)
		ping = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		defer client.Close()

	case "memory":
		// explicit memory-only mode, nothing to set up

	default:
		log.Fatalf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if appender == nil {
		memLog := changelog.NewMemoryLog()
		appender, lister = memLog, memLog
	}

	log.Printf("[Main] storage backend: %s", backend)

	recordStore := store.New(durable)
	defer recordStore.Close()

	intakeService := services.NewIntakeService(recordStore, appender)
	billingService := services.NewBillingService(recordStore, appender)

	backupService, err := services.NewBackupService(recordStore, cfg)
	if err != nil {
		log.Printf("[Main] backups disabled: %v", err)
		backupService = nil
	}

	checker := health.NewHealthChecker(recordStore, backend, ping)

	router := h.NewRouter(
		handlers.NewServiceHandler(intakeService),
		handlers.NewLaptopHandler(intakeService),
		handlers.NewVendorHandler(intakeService),
		handlers.NewBillingHandler(billingService),
		handlers.NewChangeLogHandler(lister),
		handlers.NewBackupHandler(recordStore, backupService),
		handlers.NewHealthHandler(checker),
	)

	corsHandler := middleware.NewCORS(cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsHandler(router),
	}

	go func() {
		log.Printf("[Main] listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[Main] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] server shutdown: %v", err)
	}
	// One last synchronous flush so the final mutation is not lost.
	if err := recordStore.Flush(shutdownCtx); err != nil {
		log.Printf("[Main] final flush failed: %v", err)
	}
}

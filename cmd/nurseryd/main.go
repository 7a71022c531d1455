package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"nursery-prep-backend/config"
	"nursery-prep-backend/internal/api"
	"nursery-prep-backend/internal/catalog"
	"nursery-prep-backend/internal/checklist"
	"nursery-prep-backend/internal/db"
	"nursery-prep-backend/internal/notification"
	"nursery-prep-backend/internal/prep"
	"nursery-prep-backend/internal/reminder"
	"nursery-prep-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "nursery-prep ", log.LstdFlags)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("failed to read .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}
	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Println("VAPID keys are not configured; push reminders are disabled")
		cfg.Reminder.Enabled = false
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Printf("database initialized successfully (%s)", cfg.Database.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, catalog.Default)
	prepSvc := prep.NewService(appStore, appStore, catalog.Default, prep.Options{
		Location:   cfg.Calendar.Location,
		WindowDays: cfg.Calendar.WeeklyWindowDays,
	})
	logger.Printf("prep service ready (timezone %s)", cfg.Calendar.Location)

	checklists := newChecklistStore(ctx, logger, &cfg.Checklist)

	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, &webpushOptions)
	workerPool.Start(ctx)

	reminderSvc := reminder.NewService(cfg.Reminder, cfg.Calendar.Location, prepSvc, workerPool)
	go reminderSvc.Run(ctx)

	handler := api.NewHandler(prepSvc, appStore, checklists, &webpushOptions)
	router := api.NewRouter(cfg, handler)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

// newChecklistStore uses Redis when an address is configured and reachable,
// otherwise process memory.
func newChecklistStore(ctx context.Context, logger *log.Logger, cfg *config.ChecklistConfig) checklist.Store {
	if cfg.RedisAddr == "" {
		logger.Println("checklist store: in-memory")
		return checklist.NewMemoryStore(cfg.TTL)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Printf("checklist store: redis %s unreachable (%v), falling back to in-memory", cfg.RedisAddr, err)
		_ = rdb.Close()
		return checklist.NewMemoryStore(cfg.TTL)
	}
	logger.Printf("checklist store: redis %s", cfg.RedisAddr)
	return checklist.NewRedisStore(rdb, cfg.TTL)
}

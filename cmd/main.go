package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/s/elearning/internal/cache"
	"github.com/s/elearning/internal/config"
	"github.com/s/elearning/internal/database"
	"github.com/s/elearning/internal/handlers"
	"github.com/s/elearning/internal/logger"
	"github.com/s/elearning/internal/middleware"
	"github.com/s/elearning/internal/services"
	"golang.org/x/sync/errgroup"
)

func main() {
	// ---------------------------
	// 0. Конфигурация и логгер
	// ---------------------------
	cfg, err := config.Load(".")
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------------------
	// 1. Подключаем GORM (База данных)
	// ---------------------------
	db, err := database.Connect(ctx, database.Options{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DatabaseURL,
		Retries:  cfg.DBConnectRetries,
		LogLevel: cfg.DBLogLevel,
	}, log)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	defer database.Close(db)

	// ---------------------------
	// 2. Делаем миграции и сиды
	// ---------------------------
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", "error", err)
	}
	if cfg.SeedData {
		seeded, err := database.Seed(ctx, db)
		if err != nil {
			log.Error("seed failed", "error", err)
		} else if seeded {
			log.Info("demo catalog seeded")
		}
	}

	// ---------------------------
	// 3. Кеш курсов (Redis, необязательно)
	// ---------------------------
	var courseCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, course cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer func(c *redis.Client) { _ = c.Close() }(rdb)
			courseCache = cache.NewRedis(rdb, cfg.CacheTTL, log)
		}
	}

	// ---------------------------
	// 4. Сервисы, хендлеры, роутинг
	// ---------------------------
	svc := services.New(db, courseCache, log)
	h := handlers.NewHandler(svc, db, log)
	metrics := middleware.NewMetrics()

	r := h.Routes()
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.Use(metrics.Middleware)

	var handler http.Handler = r
	handler = middleware.Recover(log)(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.CORS(cfg.Origins())(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// ---------------------------
	// 5. Запуск сервера
	// ---------------------------
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

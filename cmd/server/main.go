package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/database"
	"github.com/tasktrack/tasktrack-api/internal/logger"
	"github.com/tasktrack/tasktrack-api/internal/metrics"
	"github.com/tasktrack/tasktrack-api/internal/repository"
	"github.com/tasktrack/tasktrack-api/internal/router"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Encoding:  cfg.LogEncoding,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxAge:    cfg.LogMaxAgeDays,
	})
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, ping, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	var m *metrics.Metrics
	var observer services.QueryObserver
	if cfg.MetricsEnabled {
		m = metrics.New()
		observer = m
	}

	store, err := sessionStore(cfg)
	if err != nil {
		log.Fatal("failed to create session store", zap.Error(err))
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpiry)
	engine := router.New(router.Options{
		Log:            log,
		SessionStore:   store,
		Metrics:        m,
		RequestTimeout: cfg.RequestTimeout,
		Ping:           ping,
		Tokens:         tokens,
		Auth:           services.NewAuthService(repos.Users, tokens, log),
		Users:          services.NewUserService(repos.Users, log, observer),
		Projects:       services.NewProjectService(repos.Projects, log, observer),
		Tasks:          services.NewTaskService(repos.Tasks, repos.Projects, repos.Users, log, observer),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore connects the configured backend and returns its repositories,
// a health probe and a close function.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repositories, func(context.Context) error, func(), error) {
	if cfg.StoreDriver == config.StoreMongo {
		client, db, err := database.ConnectMongo(ctx, cfg, log)
		if err != nil {
			return repository.Repositories{}, nil, nil, err
		}
		if err := database.EnsureMongoCollections(ctx, db, log); err != nil {
			_ = client.Disconnect(context.Background())
			return repository.Repositories{}, nil, nil, err
		}
		ping := func(ctx context.Context) error { return client.Ping(ctx, nil) }
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn("mongo disconnect failed", zap.Error(err))
			}
		}
		return repository.NewMongoRepositories(db), ping, closeFn, nil
	}

	db, err := database.ConnectSQL(cfg, log)
	if err != nil {
		return repository.Repositories{}, nil, nil, err
	}
	if err := database.Migrate(db, log, repository.Tables()...); err != nil {
		return repository.Repositories{}, nil, nil, err
	}
	ping := func(ctx context.Context) error { return database.PingSQL(ctx, db) }
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewGormRepositories(db), ping, closeFn, nil
}

// sessionStore uses Redis when REDIS_HOST is set and signed cookies otherwise.
func sessionStore(cfg *config.Config) (sessions.Store, error) {
	options := sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.JWTExpiry.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	if cfg.RedisHost == "" {
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(options)
		return store, nil
	}

	store, err := redisStore.NewStore(10, "tcp", cfg.RedisHost+":"+cfg.RedisPort, "", "", []byte(cfg.SessionSecret))
	if err != nil {
		return nil, err
	}
	store.Options(options)
	return store, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	apiHttp "github.com/offroad-club/backend/internal/api/http"
	"github.com/offroad-club/backend/internal/cache"
	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/db"
	"github.com/offroad-club/backend/internal/queue/asynqserver"
	"github.com/offroad-club/backend/internal/queue/client"
	"github.com/offroad-club/backend/internal/repository"
	"github.com/offroad-club/backend/internal/server"
	"github.com/offroad-club/backend/internal/service"
	"github.com/offroad-club/backend/internal/worker"
	"github.com/offroad-club/backend/pkg/auth"
	"github.com/offroad-club/backend/pkg/email/smtp"
	"github.com/offroad-club/backend/pkg/hash"
	"github.com/offroad-club/backend/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env)
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("starting booking api", zap.String("env", cfg.Env))

	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()
	appLogger.Info("redis connection done")

	hasher := hash.NewSHA256Hasher(cfg.Admin.PasswordSalt)

	tokenManager, err := auth.NewManager(cfg.Admin.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		Repos:        repos,
	})

	workers := worker.NewWorkers(worker.Deps{
		Services:      services,
		EmailProvider: emailSender,
		Config:        cfg,
	})

	// Queue: the webhook enqueues organizer notifications through the global
	// client; the embedded asynq server drains them.
	queueClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := queueClient.Close(); err != nil {
			appLogger.Error("error when closing queue client", zap.Error(err))
		}
	}()
	client.SetClient(queueClient)

	queueServer, queueMux := asynqserver.New(cfg.Cache, workers)
	if err := queueServer.Start(queueMux); err != nil {
		appLogger.Error("queue server start failed", zap.Error(err))
		os.Exit(1)
	}
	appLogger.Info("queue server started")

	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	queueServer.Shutdown()

	appLogger.Info("app stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/roadassist/backend/internal/api/http"
	"github.com/roadassist/backend/internal/cache"
	"github.com/roadassist/backend/internal/channel"
	"github.com/roadassist/backend/internal/config"
	"github.com/roadassist/backend/internal/db"
	"github.com/roadassist/backend/internal/dispatcher"
	"github.com/roadassist/backend/internal/domain"
	"github.com/roadassist/backend/internal/queue/asynqserver"
	"github.com/roadassist/backend/internal/ratelimit"
	"github.com/roadassist/backend/internal/render"
	"github.com/roadassist/backend/internal/repository"
	"github.com/roadassist/backend/internal/server"
	"github.com/roadassist/backend/internal/service"
	"github.com/roadassist/backend/pkg/email/smtp"
	"github.com/roadassist/backend/pkg/logger"
	"github.com/roadassist/backend/pkg/otp"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env)

	appLogger.Info("starting notification backend", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	// Rate limit windows: in-process by default, redis when instances share
	// one ceiling.
	ceilings := ratelimit.CeilingsFromConfig(cfg.RateLimit)
	var sendLimiter ratelimit.Limiter
	if cfg.RateLimit.Store == "redis" {
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
		sendLimiter = ratelimit.NewRedisLimiter(redisClient, ceilings, cfg.RateLimit.Window)
	} else {
		sendLimiter = ratelimit.NewMemoryLimiter(ceilings, cfg.RateLimit.Window)
	}

	// Channel senders
	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	senders := channel.Senders{
		domain.ChannelEmail: channel.NewEmailSender(emailSender),
		domain.ChannelSMS:   channel.NewSMSSender(cfg.SMS),
		domain.ChannelPush:  channel.NewPushSender(cfg.Push),
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		appLogger.Error("renderer creation failed", zap.Error(err))
		return
	}

	// Dispatcher
	notificationDispatcher := dispatcher.New(senders, sendLimiter, renderer, cfg.Dispatcher, appLogger)
	notificationDispatcher.Start()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Logger:     appLogger,
		Config:     cfg,
		Repos:      repos,
		Generator:  otp.NewSecureGenerator(),
		Dispatcher: notificationDispatcher,
	})
	handlers := apiHttp.NewHandlers(services, cfg)

	// Periodic code cleanup through asynq
	asynqServer, asynqMux := asynqserver.New(cfg.Cache, services)
	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			appLogger.Error("asynq server run failed", zap.Error(err))
		}
	}()

	cleanupScheduler, err := asynqserver.NewScheduler(cfg.Cache, cfg.Verification.CleanupInterval)
	if err != nil {
		appLogger.Error("cleanup scheduler creation failed", zap.Error(err))
		return
	}
	go func() {
		if err := cleanupScheduler.Run(); err != nil {
			appLogger.Error("cleanup scheduler run failed", zap.Error(err))
		}
	}()

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	cleanupScheduler.Shutdown()
	asynqServer.Shutdown()
	notificationDispatcher.Stop()

	appLogger.Info("app stopped")
}

package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/minisocial/config"
	"github.com/d60-Lab/minisocial/internal/api/handler"
	"github.com/d60-Lab/minisocial/internal/api/router"
	"github.com/d60-Lab/minisocial/internal/cache"
	"github.com/d60-Lab/minisocial/internal/repository"
	"github.com/d60-Lab/minisocial/internal/service"
	"github.com/d60-Lab/minisocial/pkg/database"
	"github.com/d60-Lab/minisocial/pkg/logger"
	"github.com/d60-Lab/minisocial/pkg/tracing"
)

// @title minisocial API
// @version 1.0
// @description 好友关系与信息流服务
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Error("tracing init failed", zap.Error(err))
	} else {
		defer shutdownTracing(context.Background())
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("database init failed", zap.Error(err))
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// repositories & services
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendshipRepository(db)
	postRepo := repository.NewPostRepository(db)

	sessions := cache.NewSessionStore(rdb, cfg.JWT.TTL)
	authSvc := service.NewAuthService(userRepo, sessions, cfg.JWT.Secret, cfg.JWT.TTL)
	friendSvc := service.NewFriendshipService(friendRepo, userRepo)
	feedSvc := service.NewFeedService(postRepo, userRepo, friendRepo)
	postSvc := service.NewPostService(postRepo)

	h := handler.New(authSvc, friendSvc, feedSvc, postSvc)
	engine := router.New(cfg, h, authSvc)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server exited", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

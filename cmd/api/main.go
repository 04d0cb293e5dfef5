package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"magicwrites/internal/core/auth"
	"magicwrites/internal/core/cache"
	"magicwrites/internal/core/config"
	"magicwrites/internal/core/database"
	"magicwrites/internal/core/logger"
	"magicwrites/internal/core/server"
	"magicwrites/internal/domain"
	"magicwrites/internal/repo"
	"magicwrites/internal/service"
	"magicwrites/internal/transport/http/handler"
	"magicwrites/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	// 自动迁移
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Writing{},
			&domain.Like{},
			&domain.Reflection{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 会话签名器
	codec := &auth.Codec{
		Secret: []byte(cfg.Session.Secret),
		Issuer: cfg.Session.Issuer,
		TTL:    time.Duration(cfg.Session.TTLDays) * 24 * time.Hour,
		Secure: cfg.App.Env == "production",
	}

	// feed 缓存（可选）
	var feedCache *cache.Cache
	if cfg.Redis.Addr != "" {
		feedCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("feed cache enabled", zap.String("redis", cfg.Redis.Addr))
	}

	// 依赖
	userRepo := repo.NewUserRepo(db)
	writingRepo := repo.NewWritingRepo(db)
	interactionRepo := repo.NewInteractionRepo(db)

	authSvc := service.NewAuthService(userRepo)
	writingSvc := service.NewWritingService(writingRepo, feedCache,
		time.Duration(cfg.Redis.FeedTTLSec)*time.Second)
	interactionSvc := service.NewInteractionService(interactionRepo, writingRepo, userRepo)

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc, codec, log),
		Writing:     handler.NewWritingHandler(writingSvc, log),
		Interaction: handler.NewInteractionHandler(interactionSvc, log),
	}

	// 路由
	r := router.NewAPIEngine(log, codec, h)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	if errLog, err := logger.ToStdLogger(log, zapcore.ErrorLevel); err == nil {
		srv.ErrorLog = errLog
	}

	// 运维端口：/health + /metrics
	opsSrv := server.BuildServer(
		server.Addr(cfg.App.Ops.Host, cfg.App.Ops.Port),
		server.NewOpsEngine(log),
		5*time.Second, 10*time.Second, 60*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	go func() {
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ops start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = opsSrv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

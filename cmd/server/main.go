package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pmupro/config"
	"pmupro/internal/database"
	"pmupro/internal/mailer"
	"pmupro/internal/repository"
	"pmupro/internal/router"
	"pmupro/internal/service"
	"pmupro/pkg/cloudinary"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Server.Env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	database.SeedAdmin(db)

	cloud, err := cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	if err != nil {
		logger.Fatal("cloudinary", zap.Error(err))
	}

	var transport mailer.Transport
	if cfg.SMTP.Host == "" || cfg.Server.Env == "development" {
		transport = mailer.NewConsoleTransport(logger)
	} else {
		transport = mailer.NewSMTPTransport(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.FromName)
	}
	mail := mailer.New(transport, logger)

	depositSvc := service.NewDepositService(
		repository.NewDepositRepository(db),
		repository.NewClientRepository(db),
		repository.NewUserRepository(db),
		mail,
		logger,
		cfg.Server.BaseURL,
		cfg.Studio.Name,
		cfg.Payment.LinkExpirationDays,
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweeper := service.NewSweeper(depositSvc, cfg.Payment.SweepInterval, logger)
	go sweeper.Run(sweepCtx)

	engine := router.Setup(router.Deps{
		Cfg:        cfg,
		DB:         db,
		Cloud:      cloud,
		DepositSvc: depositSvc,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	stopSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

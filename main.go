package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"staffsync/internal/app"
	"staffsync/internal/config"
	"staffsync/internal/database"
	"staffsync/internal/mailer"
	"staffsync/internal/repositories"
	"staffsync/internal/verification"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("invalid configuration", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	if cfg.SeedData {
		ctx := context.Background()
		if err := seedProducts(ctx, repositories.NewGORMProductRepository(db), logger); err != nil {
			logger.Error("failed to seed products", zap.Error(err))
		}
		if err := seedEmployees(ctx, repositories.NewGORMEmployeeRepository(db), logger); err != nil {
			logger.Error("failed to seed employees", zap.Error(err))
		}
	}

	// --- Verification store and mailer ---
	store, closeStore, err := newVerificationStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize verification store", zap.Error(err))
	}
	defer closeStore()

	sender, err := newSender(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize mailer", zap.Error(err))
	}

	// --- Initialize Fiber App ---
	server := app.New(app.Dependencies{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Sender:    sender,
		Logger:    logger,
		AccessLog: true,
	})

	// --- Start HTTP Server ---
	logger.Info("starting server", zap.String("port", cfg.AppPort))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	logger.Info("shutting down server")

	if err := server.Shutdown(); err != nil {
		logger.Error("error during Fiber shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server gracefully stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}

// newVerificationStore returns the configured store and a function releasing it.
func newVerificationStore(cfg *config.Config, logger *zap.Logger) (verification.Store, func(), error) {
	if cfg.VerificationStore == config.StoreRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		logger.Info("verification codes stored in redis", zap.String("addr", cfg.RedisAddr))
		return verification.NewRedisStore(client), func() { client.Close() }, nil
	}

	logger.Warn("verification codes kept in memory; they are lost on restart and not shared between instances")
	store := verification.NewMemoryStore()
	return store, func() { store.Close() }, nil
}

func newSender(cfg *config.Config, logger *zap.Logger) (mailer.Sender, error) {
	if cfg.MailProvider == config.MailSendGrid {
		return mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom, logger.Named("sendgrid"))
	}
	return mailer.NewConsoleMailer(logger.Named("mail")), nil
}

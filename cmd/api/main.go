package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-tracker/configs"
	v1 "todo-tracker/internal/api/v1"
	"todo-tracker/internal/api/v1/handlers"
	"todo-tracker/internal/config"
	"todo-tracker/internal/middleware"
	"todo-tracker/internal/repository/postgres"
	"todo-tracker/pkg/database"
	"todo-tracker/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	cfg := configs.LoadConfig()

	// Missing store coordinates are fatal at startup, not per-request.
	if cfg.DBHost == "" || cfg.DBName == "" {
		log.Fatal("Database configuration missing. Please set DB_HOST and DB_NAME in your environment.")
	}
	if cfg.JWTSecret != "" {
		config.SecretKey = []byte(cfg.JWTSecret)
	} else {
		logger.SecurityLogger.Warn("JWT_SECRET is not set, using the insecure built-in development key")
	}

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	if err := postgres.Init(db); err != nil {
		log.Fatalf("Error creating tables: %v", err)
	}

	if cfg.RedisHost != "" {
		config.RedisClient = database.ConnectRedis(cfg)
		defer config.RedisClient.Close()
		logger.SystemLogger.Info("Redis connected")
	} else {
		logger.SystemLogger.Info("Redis not configured, task cache disabled")
	}

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	h := handlers.New(postgres.NewUserRepository(db), postgres.NewTaskRepository(db), cfg.Env)
	v1.RegisterRoutes(app, h)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.SystemLogger.Info("Shutdown signal received, closing HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.ErrorLogger.Error("Error during shutdown", zap.Error(err))
	}
}

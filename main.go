package main

//go:generate swag init --output config/swagger --outputTypes go --parseDependency

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Roomio/config"
	_ "Roomio/config/swagger"
	"Roomio/middleware"
	"Roomio/pkg/logger"
	"Roomio/routes"
	"Roomio/services"
	"Roomio/services/redis"
	"Roomio/services/socket_io"
	"Roomio/store"
	"Roomio/store/memory"
	pgstore "Roomio/store/postgres"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Roomio API
// @version 1.0
// @description Gin-Gonic server for the Roomio roommate matching API
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", "development")
		logger.Fatal("Invalid configuration", err)
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()

	logger.Info("Setting up server...", "env", cfg.AppEnv, "store", cfg.StoreDriver)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var st store.Store
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using the in-memory store, data is lost on restart")
		st = memory.New()
	default:
		gormDB, err := config.ConnectGORM(cfg)
		if err != nil {
			logger.Fatal("Error connecting to PostgreSQL", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			logger.Fatal("Error reading GORM PostgreSQL instance", err)
		}
		defer sqlDB.Close()

		// Only migrate in development or during deployment
		if cfg.MigratePostgres {
			logger.Info("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(gormDB); err != nil {
				logger.Fatal("Database migration failed", err)
			}
		}
		st = pgstore.New(gormDB)
	}

	redisClient, err := config.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("Error connecting to Redis", err)
	}
	if redisClient != nil {
		defer redis.CloseRedis(redisClient)
	}

	// Interfaces stay nil unless the backing client exists.
	opts := services.Options{}
	deps := routes.Deps{Config: cfg}
	if redisClient != nil {
		opts.Cache = redisClient
		deps.Limiter = redisClient
		deps.Presence = redisClient
	} else {
		deps.Limiter = middleware.NewMemoryLimiter()
	}

	var sio *socket_io.MySocketServer
	if cfg.EnableRealtime {
		sio = socket_io.New(cfg.CORSOrigins)
		opts.Notifier = sio
	}

	svc := services.New(st, opts)
	deps.Services = svc

	r := gin.New()
	r.Use(gin.Recovery())
	middleware.SetUpMiddleware(r, cfg)
	routes.SetupRoutes(r, deps)

	if sio != nil {
		sio.Start(r, cfg.JWTSecret, svc, redisClient)
		defer sio.Close()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}

// @title DrayModas API
// @version 1.0
// @description Storefront catalog and CMS backend for DrayModas
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/rafaelsantos7520/draymodas/cache"
	"github.com/rafaelsantos7520/draymodas/config"
	"github.com/rafaelsantos7520/draymodas/routes"
	"github.com/rafaelsantos7520/draymodas/services"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	config.InitLogger(cfg)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to DB
	if err := config.InitDB(cfg); err != nil {
		logrus.Fatalf("database: %v", err)
	}
	// Redis connection (optional)
	if err := config.ConnectRedis(cfg); err != nil {
		logrus.Fatalf("redis: %v", err)
	}

	store, err := cache.New(cfg.CatalogCache, config.RedisClient, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	if err != nil {
		logrus.Fatalf("catalog cache: %v", err)
	}

	if err := services.InitJWTService(cfg.JWTSecret, cfg.JWTTTL); err != nil {
		logrus.Fatalf("Failed to initialize JWT service: %v", err)
	}
	services.InitServices(config.DB, store, cfg.CatalogPerPage)
	logrus.WithField("catalog_cache", cfg.CatalogCache).Info("services initialized")

	router := routes.NewRouter(routes.Options{
		CORSOrigins:    cfg.CORSOrigins,
		Redis:          config.RedisClient,
		AdminRateLimit: cfg.AdminRateLimit,
		HealthCheck:    config.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.Infof("server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("http server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				logrus.Info("graceful shutdown initiated")
				return srv.Shutdown(ctx)
			},
			"redis": func(ctx context.Context) error {
				return config.CloseRedis()
			},
			"database": func(ctx context.Context) error {
				config.CloseDB()
				return nil
			},
		},
	)

	exitCode := <-wait
	logrus.Infof("application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

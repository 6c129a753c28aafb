package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rafaelsantos7520/draymodas/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Pool is the pgx pool that backs DB.
	Pool *pgxpool.Pool
	DB   *gorm.DB
)

// InitDB opens the pgx pool, hands it to GORM and runs migrations.
func InitDB(cfg *AppConfig) error {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		return fmt.Errorf("invalid database url: %w", err)
	}
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MaxConnLifetime = 5 * time.Minute
	poolCfg.MaxConnIdleTime = 2 * time.Minute

	ctx, cancel := WithTimeout()
	defer cancel()

	Pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := Pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logrus.Info("database connected (pgx)")

	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	DB, err = gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(Pool),
	}), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("failed to open gorm on pgx pool: %w", err)
	}

	if err := Migrate(DB); err != nil {
		return err
	}
	logrus.Info("database connected (GORM)")
	return nil
}

// Migrate creates or updates every table the API owns. Tests run it against SQLite.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Product{}, "Sizes", &models.ProductSize{}); err != nil {
		return fmt.Errorf("failed to set up product_sizes join table: %w", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Size{},
		&models.Product{},
		&models.ProductSize{},
		&models.Image{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping checks the pool; used by the health endpoint.
func Ping(ctx context.Context) error {
	if Pool == nil {
		return fmt.Errorf("database not initialized")
	}
	return Pool.Ping(ctx)
}

func CloseDB() {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil && sqlDB != nil {
			sqlDB.Close()
			logrus.Info("database connection closed (GORM)")
		}
	}
	if Pool != nil {
		Pool.Close()
		logrus.Info("database connection closed (pgx)")
	}
}

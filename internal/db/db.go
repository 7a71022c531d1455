package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nursery-prep-backend/config"
	"nursery-prep-backend/internal/model"
)

// Models lists every table the service owns, in migration order.
var Models = []any{
	&model.Observation{},
	&model.RequiredCount{},
	&model.PushSubscription{},
}

// dialector picks the gorm driver for cfg.Driver.
func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("Database initialization complete.")
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

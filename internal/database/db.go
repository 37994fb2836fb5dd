package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/justsurfingit/job-corner/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the PostgreSQL pool and verifies it answers a ping.
func Connect(dsn string, log *slog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	if log == nil {
		log = slog.Default()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info("database connection established", "event", "db_connected", "module", "database")
	return db, nil
}

// Migrate creates or updates the tables, including the unique index on
// (applicant_id, job_id) and the cascading foreign key from applications to jobs.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log.Info("running migrations", "event", "db_migrate", "module", "database")
	return db.AutoMigrate(
		&models.Account{},
		&models.EmployeeProfile{},
		&models.CompanyProfile{},
		&models.Job{},
		&models.Application{},
		&models.Session{},
	)
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

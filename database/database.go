package database

import (
	"fmt"
	"time"

	"github.com/quantpulse/riskscore/config"
	"github.com/quantpulse/riskscore/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the Postgres connection, configures the pool and migrates the
// schema. TranslateError is enabled so unique-index violations surface as
// gorm.ErrDuplicatedKey, which the upsert writer relies on.
func InitDB(cfg config.Database) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// The engine runs one synchronous batch; a small pool is plenty.
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := DB.AutoMigrate(&models.PriceBar{}, &models.NewsEvent{}, &models.RiskScore{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := OptimizeIndexes(DB); err != nil {
		log.Warn().Err(err).Msg("failed to optimize indexes")
	}

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("database connected and migrated")
	return nil
}

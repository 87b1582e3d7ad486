package db

import (
	"fmt"

	"gavel-auction-service/internal/config"
	"gavel-auction-service/internal/domain/auction"
	"gavel-auction-service/internal/domain/bid"
	"gavel-auction-service/internal/domain/notification"
	"gavel-auction-service/internal/domain/user"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the database connection used by every repository
func NewConnection(cfg *config.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying database handle: %w", err)
	}

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return gormDB, nil
}

// Migrate creates or updates the relational schema for all entities
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&user.User{},
		&auction.Auction{},
		&bid.Bid{},
		&notification.Notification{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying database handle: %w", err)
	}
	return sqlDB.Close()
}

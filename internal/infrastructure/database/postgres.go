package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ameen0saad/TO-DO-List/internal/infrastructure/repositories"
)

// Open creates a new database connection. TranslateError is enabled so
// uniqueness violations surface as gorm.ErrDuplicatedKey and can be mapped
// to a conflict response instead of leaking driver detail.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for all required tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBTask{},
		&repositories.DBTeam{},
		&repositories.DBTeamTask{},
		&repositories.DBVerificationToken{},
		&repositories.DBPasswordResetOTP{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

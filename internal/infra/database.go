package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for the two tables. TranslateError is on so that unique-index violations
// surface as gorm.ErrDuplicatedKey; the services rely on that to report
// Conflict instead of a bare 500 when two registrations race.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(&model.User{}, &model.Sweet{}); err != nil {
		return nil, err
	}
	if err := ApplyPatches(db); err != nil {
		return nil, err
	}

	return db, nil
}

// schemaPatches are idempotent statements covering constraints AutoMigrate
// cannot express. Every statement must be safe to re-run on every start.
var schemaPatches = []string{
	// At most one admin row may ever exist. Two bootstrap requests that both
	// observe zero admins race to this index; the loser gets a uniqueness
	// violation instead of a second admin.
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_single_admin ON users (role) WHERE role = 'admin'`,
}

// ApplyPatches runs the schema patches. Exported so the test harness can
// bring its throwaway databases up to the same schema.
func ApplyPatches(db *gorm.DB) error {
	for _, stmt := range schemaPatches {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

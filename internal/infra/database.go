package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for the full schema. TranslateError is enabled so unique-index violations
// surface as gorm.ErrDuplicatedKey (the coupon and feedback services branch on
// that).
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

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.MenuItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Reservation{},
		&model.Coupon{},
		&model.Feedback{},
		&model.SalesReport{},
	)
}

package repository

import (
	"testing"

	"roopshree-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Product{}, &models.Stock{}, &models.StockHistory{}, &models.Wishlist{},
		&models.Banner{}, &models.Offer{},
		&models.Order{}, &models.OrderOtp{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

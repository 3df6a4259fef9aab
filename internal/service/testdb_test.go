package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
)

// setupTestDB connects to the database named by TEST_DB_DSN and
// migrates the schema. Tests that need persistence skip when the
// variable is unset so the pure units still run anywhere.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping database-backed test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Wallet{}, &domain.Order{}, &domain.WatchlistEntry{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		for _, model := range []any{&domain.Order{}, &domain.WatchlistEntry{}, &domain.Wallet{}, &domain.User{}} {
			db.Where("1 = 1").Delete(model)
		}
	})
	return db
}

// createTestUser inserts a user with a funded wallet and returns its id.
func createTestUser(t *testing.T, db *gorm.DB, balance float64) uint {
	t.Helper()

	user := domain.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		Password: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	wallet := domain.Wallet{UserID: user.ID, Balance: balance}
	if err := db.Create(&wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return user.ID
}

func newTestServices(db *gorm.DB) (*WalletService, *TradeService, *WatchlistService) {
	wallets := NewWalletService(db)
	trades := NewTradeService(db, wallets, NewOrderBook(db))
	return wallets, trades, NewWatchlistService(db)
}

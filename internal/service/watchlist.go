package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
)

// WatchlistService tracks the symbols each user watches.
type WatchlistService struct {
	db *gorm.DB
}

func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{db: db}
}

// List returns a user's watchlist, most recently added first.
func (s *WatchlistService) List(userID uint) ([]domain.WatchlistEntry, error) {
	entries := make([]domain.WatchlistEntry, 0)
	err := s.db.Where("user_id = ?", userID).
		Order("added_at desc").
		Find(&entries).Error
	return entries, err
}

// Add puts a symbol on the user's watchlist. Adding a symbol that is
// already present is a no-op returning the existing entry.
func (s *WatchlistService) Add(userID uint, symbol, name, exchange string) (*domain.WatchlistEntry, error) {
	if symbol == "" {
		return nil, domain.ErrValidation
	}

	var existing domain.WatchlistEntry
	err := s.db.Where("user_id = ? AND symbol = ?", userID, symbol).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry := domain.WatchlistEntry{
		UserID:   userID,
		Symbol:   symbol,
		Name:     name,
		Exchange: exchange,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove drops a symbol from the user's watchlist. Removing an absent
// symbol is not an error.
func (s *WatchlistService) Remove(userID uint, symbol string) error {
	if symbol == "" {
		return domain.ErrValidation
	}
	return s.db.Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&domain.WatchlistEntry{}).Error
}

package service

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
)

// WalletService is the wallet ledger: one balance per user, created
// lazily, mutated only here and by trade settlement.
type WalletService struct {
	db    *gorm.DB
	locks *userLocks
}

// NewWalletService builds the ledger with its own per-user lock
// manager; TradeService shares it so wallet and settlement mutations
// for the same user serialize together.
func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db, locks: newUserLocks()}
}

// GetOrCreate returns the user's wallet, creating a zero-balance one on
// first access. Idempotent.
func (s *WalletService) GetOrCreate(userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := s.db.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = domain.Wallet{UserID: userID, Balance: 0}
		if err := s.db.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Credit adds amount to the user's balance and returns the new balance.
func (s *WalletService) Credit(userID uint, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	wallet, err := s.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(wallet).
			Update("balance", gorm.Expr("balance + ?", amount)).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  amount,
			"error":   err.Error(),
		}).Error("Wallet credit failed")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    "credit",
	}).Info("Wallet credited")
	return wallet.Balance + amount, nil
}

// Debit subtracts amount from the user's balance. A debit that would
// push the balance negative is rejected before any mutation.
func (s *WalletService) Debit(userID uint, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, domain.ErrValidation
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	return s.debitLocked(s.db, userID, amount)
}

// debitLocked performs the balance check and decrement. Callers must
// hold the user's lock; tx may be a transaction handle.
func (s *WalletService) debitLocked(tx *gorm.DB, userID uint, amount float64) (float64, error) {
	wallet, err := s.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}
	if wallet.Balance < amount {
		return wallet.Balance, domain.ErrInsufficientFunds
	}

	// Conditional update guards against any write that slipped past
	// the lock; zero rows affected means the re-checked balance no
	// longer covers the amount.
	res := tx.Model(&domain.Wallet{}).
		Where("id = ? AND balance >= ?", wallet.ID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return wallet.Balance, domain.ErrInsufficientFunds
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"type":    "debit",
	}).Info("Wallet debited")
	return wallet.Balance - amount, nil
}

// Balance returns the user's current balance, creating the wallet if
// missing.
func (s *WalletService) Balance(userID uint) (float64, error) {
	wallet, err := s.GetOrCreate(userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

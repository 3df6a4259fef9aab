package service

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
)

// TradeService settles simulated trades: a buy debits the wallet and
// opens a position, a sell reduces the position and credits the
// proceeds. Both writes happen inside one transaction, and settlements
// for the same user are serialized, so a trade either lands fully or
// not at all and the balance check can't race itself.
type TradeService struct {
	db      *gorm.DB
	wallets *WalletService
	orders  *OrderBook
	locks   *userLocks
}

func NewTradeService(db *gorm.DB, wallets *WalletService, orders *OrderBook) *TradeService {
	return &TradeService{db: db, wallets: wallets, orders: orders, locks: wallets.locks}
}

// Buy purchases quantity units of symbol at price. Fails with
// ErrInsufficientFunds before any mutation when the wallet can't cover
// price*quantity. Returns the new order and the updated balance.
func (s *TradeService) Buy(userID uint, symbol string, price float64, quantity int) (*domain.Order, float64, error) {
	if symbol == "" || price <= 0 || quantity <= 0 {
		return nil, 0, domain.ErrValidation
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	totalCost := price * float64(quantity)

	wallet, err := s.wallets.GetOrCreate(userID)
	if err != nil {
		return nil, 0, err
	}
	if wallet.Balance < totalCost {
		return nil, wallet.Balance, domain.ErrInsufficientFunds
	}

	var order *domain.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Wallet{}).
			Where("id = ? AND balance >= ?", wallet.ID, totalCost).
			Update("balance", gorm.Expr("balance - ?", totalCost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInsufficientFunds
		}

		order, err = s.orders.OpenPosition(tx, userID, symbol, price, quantity)
		return err
	})
	if err != nil {
		if err != domain.ErrInsufficientFunds {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"symbol":  symbol,
				"error":   err.Error(),
			}).Error("Buy settlement failed")
		}
		return nil, wallet.Balance, err
	}

	newBalance := wallet.Balance - totalCost
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"symbol":   symbol,
		"price":    price,
		"quantity": quantity,
		"cost":     totalCost,
		"type":     "buy",
	}).Info("Trade settled")
	return order, newBalance, nil
}

// Sell sells quantity units out of one of the caller's positions at
// price. The order is looked up scoped to the caller; selling more than
// the position holds fails with ErrQuantityExceedsOwned and mutates
// nothing. Returns the remaining order (nil when fully closed) and the
// updated balance.
func (s *TradeService) Sell(userID, orderID uint, price float64, quantity int) (*domain.Order, float64, error) {
	if price <= 0 || quantity <= 0 {
		return nil, 0, domain.ErrValidation
	}

	s.locks.Lock(userID)
	defer s.locks.Unlock(userID)

	order, err := s.orders.FindForUser(orderID, userID)
	if err != nil {
		return nil, 0, err
	}
	if quantity > order.Quantity {
		return order, 0, domain.ErrQuantityExceedsOwned
	}

	wallet, err := s.wallets.GetOrCreate(userID)
	if err != nil {
		return nil, 0, err
	}

	proceeds := price * float64(quantity)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orders.ReducePosition(tx, order, quantity); err != nil {
			return err
		}
		return tx.Model(&domain.Wallet{}).
			Where("id = ?", wallet.ID).
			Update("balance", gorm.Expr("balance + ?", proceeds)).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"order_id": orderID,
			"error":    err.Error(),
		}).Error("Sell settlement failed")
		return nil, wallet.Balance, err
	}

	newBalance := wallet.Balance + proceeds
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"order_id": orderID,
		"price":    price,
		"quantity": quantity,
		"proceeds": proceeds,
		"type":     "sell",
	}).Info("Trade settled")

	if order.Quantity == 0 {
		return nil, newBalance, nil
	}
	return order, newBalance, nil
}

// Orders lists the caller's open positions, most recent first.
func (s *TradeService) Orders(userID uint) ([]domain.Order, error) {
	return s.orders.ListForUser(userID)
}

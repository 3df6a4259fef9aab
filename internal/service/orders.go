package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Darekar-Ishita/Trading-website/internal/domain"
)

// OrderBook holds each user's open positions. Buys append, sells
// decrement or delete; no other path mutates an order.
type OrderBook struct {
	db *gorm.DB
}

func NewOrderBook(db *gorm.DB) *OrderBook {
	return &OrderBook{db: db}
}

// OpenPosition creates a new order unconditionally. Two buys of the
// same symbol produce two separate positions; there is no merging.
func (b *OrderBook) OpenPosition(tx *gorm.DB, userID uint, symbol string, price float64, quantity int) (*domain.Order, error) {
	if symbol == "" || price <= 0 || quantity <= 0 {
		return nil, domain.ErrValidation
	}
	order := domain.Order{
		UserID:      userID,
		StockSymbol: symbol,
		Price:       price,
		Quantity:    quantity,
		Type:        "BUY",
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ReducePosition decrements the order's quantity, deleting the record
// when it reaches zero. An order never persists at quantity 0.
func (b *OrderBook) ReducePosition(tx *gorm.DB, order *domain.Order, quantity int) error {
	if quantity <= 0 || quantity > order.Quantity {
		return domain.ErrInvalidQuantity
	}
	remaining := order.Quantity - quantity
	if remaining == 0 {
		if err := tx.Delete(order).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Model(order).Update("quantity", remaining).Error; err != nil {
			return err
		}
	}
	order.Quantity = remaining
	return nil
}

// FindForUser looks an order up scoped to its owner. A foreign order id
// is indistinguishable from a missing one.
func (b *OrderBook) FindForUser(orderID, userID uint) (*domain.Order, error) {
	var order domain.Order
	err := b.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListForUser returns a user's open positions, most recent first.
func (b *OrderBook) ListForUser(userID uint) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	err := b.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

package domain

// Order Model. An order is an open position, not an immutable trade
// record: a buy creates one, a sell decrements its quantity and deletes
// it when the quantity reaches zero. Type stays "BUY" for the whole
// lifetime of the record; standalone SELL records are never persisted.
type Order struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"index;not null" json:"userId"`
	StockSymbol string  `gorm:"not null" json:"stockSymbol"`
	Price       float64 `gorm:"not null" json:"price"` // entry price per unit
	Quantity    int     `gorm:"not null" json:"quantity"`
	Type        string  `gorm:"default:BUY" json:"type"`
	CreatedAt   int64   `gorm:"autoCreateTime:milli" json:"createdAt"`
}

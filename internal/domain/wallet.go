package domain

// Wallet Model. One wallet per user, created lazily on first access.
// Balance is only ever mutated by trade settlement and add-funds.
type Wallet struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	UserID  uint    `gorm:"uniqueIndex" json:"userId"`
	Balance float64 `gorm:"not null;default:0" json:"balance"`
}

package domain

// User Model
type User struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"not null" json:"name"`
	Email      string  `gorm:"uniqueIndex;not null" json:"email"`
	Password   string  `gorm:"not null" json:"-"`       // bcrypt hash, never serialized
	Wallet     float64 `gorm:"default:0" json:"wallet"` // informational balance snapshot
	IsVerified bool    `gorm:"default:false" json:"isVerified"`
	CreatedAt  int64   `gorm:"autoCreateTime:milli" json:"createdAt"`
}

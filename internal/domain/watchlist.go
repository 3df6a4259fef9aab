package domain

// WatchlistEntry Model. At most one entry per (user, symbol) pair.
type WatchlistEntry struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index:idx_user_symbol,unique;not null" json:"userId"`
	Symbol   string `gorm:"index:idx_user_symbol,unique;not null" json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	AddedAt  int64  `gorm:"autoCreateTime:milli" json:"addedAt"`
}

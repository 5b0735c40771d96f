package model

import "time"

// Subscriber is a Telegram chat that opted into the daily summary.
type Subscriber struct {
	ID        uint  `gorm:"primaryKey"`
	ChatID    int64 `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

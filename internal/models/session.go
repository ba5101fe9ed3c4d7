package models

import "time"

// AdminSession marks a client as authenticated. Only the SHA-256 hash of the
// cookie token is persisted; the raw token lives exclusively in the cookie.
type AdminSession struct {
	ID        uint      `gorm:"primaryKey"`
	TokenHash []byte    `gorm:"not null;uniqueIndex;size:32"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

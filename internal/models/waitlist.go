package models

import "time"

// WaitlistEntry is a single signup. Entries are immutable once created;
// there is no update or delete path anywhere in the service.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"not null;unique;index"`
	Website   string    `gorm:"size:500"`
	CreatedAt time.Time `gorm:"not null"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}

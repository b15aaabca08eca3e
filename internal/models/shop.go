package models

import "time"

// Shop is the tenancy unit: every transactional record belongs to one shop
// and a user can own several shops (e.g. a main store and a warehouse outlet).
type Shop struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	User      User
	Name      string `gorm:"size:100;not null"`
	Address   string `gorm:"size:255"`
	Phone     string `gorm:"size:50"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

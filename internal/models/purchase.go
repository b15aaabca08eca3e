package models

import "time"

// Purchase is a stock intake from a supplier. TotalAmount is fixed at entry
// time (quantity * rate) and never recomputed afterwards.
type Purchase struct {
	ID          uint    `gorm:"primaryKey"`
	ShopID      uint    `gorm:"index;not null"`
	Shop        Shop
	ProductID   uint    `gorm:"index;not null"`
	Product     Product
	Quantity    float64 `gorm:"not null"`
	Rate        float64 `gorm:"not null"`
	TotalAmount float64 `gorm:"not null"`
	Date        string  `gorm:"size:10;index;not null"` // "2006-01-02"
	Supplier    string  `gorm:"size:100"`
	Notes       string  `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

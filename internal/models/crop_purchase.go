package models

import "time"

type CropStatus string

const (
	CropInStorage CropStatus = "in_storage"
	CropSold      CropStatus = "sold"
)

// CropPurchase is a crop lot bought from a farmer, held in storage until it
// is sold on (typically to a factory). CropType is free text and doubles as
// the inventory grouping key, exact match, case-sensitive.
type CropPurchase struct {
	ID          uint    `gorm:"primaryKey"`
	ShopID      uint    `gorm:"index;not null"`
	Shop        Shop
	CropType    string  `gorm:"size:100;not null"`
	Quantity    float64 `gorm:"not null"`
	Rate        float64 `gorm:"not null"`
	TotalAmount float64 `gorm:"not null"`
	Date        string  `gorm:"size:10;index;not null"` // "2006-01-02"
	Supplier    string  `gorm:"size:100"`
	Notes       string  `gorm:"size:255"`
	Status      CropStatus `gorm:"size:15;not null;default:in_storage"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

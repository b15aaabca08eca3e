package models

import "time"

type Product struct {
	ID        uint   `gorm:"primaryKey"`
	ShopID    uint   `gorm:"index;not null"`
	Shop      Shop
	Name      string  `gorm:"size:100;not null"`
	Category  string  `gorm:"size:50"`
	Unit      string  `gorm:"size:20;not null"` // bags, kg, liters
	MinStock  float64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

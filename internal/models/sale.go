package models

import "time"

type PaymentStatus string

const (
	PaymentCash    PaymentStatus = "cash"
	PaymentLoan    PaymentStatus = "loan"
	PaymentPartial PaymentStatus = "partial"
)

// Sale records a single product sale, cash or on credit. Profit is the margin
// against the weighted-average purchase rate at entry time; the stock view
// recomputes profit against the current average instead, so the two can drift
// apart once later purchases move the average.
type Sale struct {
	ID              uint    `gorm:"primaryKey"`
	ShopID          uint    `gorm:"index;not null"`
	Shop            Shop
	ProductID       uint    `gorm:"index;not null"`
	Product         Product
	Quantity        float64 `gorm:"not null"`
	Rate            float64 `gorm:"not null"`
	TotalAmount     float64 `gorm:"not null"`
	Profit          float64 `gorm:"not null"`
	Date            string  `gorm:"size:10;index;not null"` // "2006-01-02"
	CustomerName    string  `gorm:"size:100"`
	CustomerPhone   string  `gorm:"size:50"`
	CustomerAddress string  `gorm:"size:255"`
	PaymentStatus   PaymentStatus `gorm:"size:10;not null"`
	AmountPaid      float64 `gorm:"not null"`
	RemainingAmount float64 `gorm:"not null"`
	DueDate         *string `gorm:"size:10"` // nil for cash sales
	Notes           string  `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

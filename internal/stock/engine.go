package stock

import (
	"fmt"
	"math"
	"time"

	"agrostore-backend/internal/models"
)

// The functions in this package are the derived-metrics engine behind the
// stock, crops, customers and notifications views. They take full record
// collections, never mutate them, never touch the database and never fail:
// empty groups divide out to 0 and bad dates count as 0 days. Everything is
// recomputed from scratch on each call.

type ProductStock struct {
	TotalBought     float64 `json:"totalBought"`
	TotalSold       float64 `json:"totalSold"`
	StockLeft       float64 `json:"stockLeft"`
	AvgPurchaseRate float64 `json:"avgPurchaseRate"`
	StockValue      float64 `json:"stockValue"`
	TotalProfit     float64 `json:"totalProfit"`
}

type CropInventoryItem struct {
	CropType      string  `json:"cropType"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalCost     float64 `json:"totalCost"`
	OldestDate    string  `json:"oldestDate"`
	AvgRate       float64 `json:"avgRate"`
	DaysInStorage int     `json:"daysInStorage"`
}

type CustomerSummary struct {
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Address          string  `json:"address"`
	TotalPurchases   float64 `json:"totalPurchases"`
	OutstandingLoans float64 `json:"outstandingLoans"`
	LastPurchase     string  `json:"lastPurchase"`
}

type NotificationType string

const (
	NotificationWarning NotificationType = "warning"
	NotificationDanger  NotificationType = "danger"
)

type Notification struct {
	Type    NotificationType `json:"type"`
	Icon    string           `json:"icon"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

// ComputeProductStock derives the stock position of one product from the
// full purchase and sale history. The average purchase rate is a simple
// weighted average over every purchase ever made (not FIFO, not windowed),
// and profit is recomputed against that current average for every sale, so
// reported profit on old sales shifts when a new purchase moves the average.
// Negative stock is reported as-is; it means the records oversell.
func ComputeProductStock(productID uint, purchases []models.Purchase, sales []models.Sale) ProductStock {
	var totalBought, totalSold, totalPurchaseAmount float64

	for _, p := range purchases {
		if p.ProductID != productID {
			continue
		}
		totalBought += p.Quantity
		totalPurchaseAmount += p.TotalAmount
	}

	avgPurchaseRate := 0.0
	if totalBought > 0 {
		avgPurchaseRate = totalPurchaseAmount / totalBought
	}

	var totalProfit float64
	for _, s := range sales {
		if s.ProductID != productID {
			continue
		}
		totalSold += s.Quantity
		totalProfit += s.Quantity * (s.Rate - avgPurchaseRate)
	}

	stockLeft := totalBought - totalSold

	return ProductStock{
		TotalBought:     totalBought,
		TotalSold:       totalSold,
		StockLeft:       stockLeft,
		AvgPurchaseRate: avgPurchaseRate,
		StockValue:      stockLeft * avgPurchaseRate,
		TotalProfit:     totalProfit,
	}
}

// ComputeCropInventory groups crop purchases still in storage by crop type.
// Grouping is an exact, case-sensitive string match on CropType and the
// output keeps the first-occurrence order of each type. Sold lots drop out
// entirely. DaysInStorage depends on the wall clock, so it moves on every
// call even with unchanged data.
func ComputeCropInventory(cropPurchases []models.CropPurchase) []CropInventoryItem {
	type group struct {
		totalQuantity float64
		totalCost     float64
		oldestDate    string
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, cp := range cropPurchases {
		if cp.Status != models.CropInStorage {
			continue
		}
		g, ok := groups[cp.CropType]
		if !ok {
			g = &group{oldestDate: cp.Date}
			groups[cp.CropType] = g
			order = append(order, cp.CropType)
		}
		g.totalQuantity += cp.Quantity
		g.totalCost += cp.TotalAmount
		if cp.Date < g.oldestDate {
			g.oldestDate = cp.Date
		}
	}

	now := time.Now().UTC()
	items := make([]CropInventoryItem, 0, len(order))
	for _, cropType := range order {
		g := groups[cropType]
		avgRate := 0.0
		if g.totalQuantity > 0 {
			avgRate = g.totalCost / g.totalQuantity
		}
		items = append(items, CropInventoryItem{
			CropType:      cropType,
			TotalQuantity: g.totalQuantity,
			TotalCost:     g.totalCost,
			OldestDate:    g.oldestDate,
			AvgRate:       avgRate,
			DaysInStorage: daysSince(g.oldestDate, now),
		})
	}

	return items
}

// ComputeCustomerSummaries groups sales by exact customer name. Sales with
// no customer name are skipped. Phone and address stick at the values from
// the customer's first sale; later records never overwrite them.
func ComputeCustomerSummaries(sales []models.Sale) []CustomerSummary {
	summaries := make(map[string]*CustomerSummary)
	order := make([]string, 0)

	for _, s := range sales {
		if s.CustomerName == "" {
			continue
		}
		cs, ok := summaries[s.CustomerName]
		if !ok {
			cs = &CustomerSummary{
				Name:         s.CustomerName,
				Phone:        orDash(s.CustomerPhone),
				Address:      orDash(s.CustomerAddress),
				LastPurchase: s.Date,
			}
			summaries[s.CustomerName] = cs
			order = append(order, s.CustomerName)
		}
		cs.TotalPurchases += s.TotalAmount
		cs.OutstandingLoans += s.RemainingAmount
		if s.Date > cs.LastPurchase {
			cs.LastPurchase = s.Date
		}
	}

	out := make([]CustomerSummary, 0, len(order))
	for _, name := range order {
		out = append(out, *summaries[name])
	}
	return out
}

// ComputeNotifications derives the alert feed: one warning per product whose
// stock dropped strictly below its minimum, then one danger alert per sale
// with an outstanding balance past its due date. Nothing is deduplicated or
// snoozed; an alert reappears as long as its condition holds.
func ComputeNotifications(products []models.Product, sales []models.Sale, purchases []models.Purchase) []Notification {
	notifications := make([]Notification, 0)

	for _, product := range products {
		st := ComputeProductStock(product.ID, purchases, sales)
		if st.StockLeft < product.MinStock {
			notifications = append(notifications, Notification{
				Type:    NotificationWarning,
				Icon:    "⚠️",
				Title:   "Low Stock Alert",
				Message: fmt.Sprintf("%s is running low (%.2f %s)", product.Name, st.StockLeft, product.Unit),
			})
		}
	}

	now := time.Now().UTC()
	for _, s := range sales {
		if s.RemainingAmount <= 0 || s.DueDate == nil || *s.DueDate == "" {
			continue
		}
		due, err := time.Parse("2006-01-02", *s.DueDate)
		if err != nil || !due.Before(now) {
			continue
		}
		customer := s.CustomerName
		if customer == "" {
			customer = "Customer"
		}
		notifications = append(notifications, Notification{
			Type:    NotificationDanger,
			Icon:    "🔴",
			Title:   "Overdue Loan",
			Message: fmt.Sprintf("%s - %s overdue by %d days", customer, FormatCurrency(s.RemainingAmount), daysSince(*s.DueDate, now)),
		})
	}

	return notifications
}

// daysSince returns the whole days elapsed from an ISO date to now,
// or 0 when the date does not parse.
func daysSince(date string, now time.Time) int {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	return int(math.Floor(now.Sub(d).Hours() / 24))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

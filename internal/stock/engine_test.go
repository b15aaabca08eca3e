package stock

import (
	"fmt"
	"testing"
	"time"

	"agrostore-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isoDaysFromNow(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestComputeProductStockNoHistory(t *testing.T) {
	st := ComputeProductStock(1, nil, nil)

	assert.Zero(t, st.TotalBought)
	assert.Zero(t, st.TotalSold)
	assert.Zero(t, st.StockLeft)
	assert.Zero(t, st.AvgPurchaseRate)
	assert.Zero(t, st.StockValue)
	assert.Zero(t, st.TotalProfit)
}

func TestComputeProductStockEndToEnd(t *testing.T) {
	purchases := []models.Purchase{
		{ProductID: 1, Quantity: 100, Rate: 50, TotalAmount: 5000, Date: "2025-01-10"},
	}
	sales := []models.Sale{
		{ProductID: 1, Quantity: 30, Rate: 70, TotalAmount: 2100, Date: "2025-02-01"},
	}

	st := ComputeProductStock(1, purchases, sales)

	assert.Equal(t, 100.0, st.TotalBought)
	assert.Equal(t, 30.0, st.TotalSold)
	assert.Equal(t, 70.0, st.StockLeft)
	assert.Equal(t, 50.0, st.AvgPurchaseRate)
	assert.Equal(t, 3500.0, st.StockValue)
	assert.Equal(t, 600.0, st.TotalProfit)
}

func TestComputeProductStockIgnoresOtherProducts(t *testing.T) {
	purchases := []models.Purchase{
		{ProductID: 1, Quantity: 10, Rate: 100, TotalAmount: 1000, Date: "2025-01-10"},
		{ProductID: 2, Quantity: 99, Rate: 5, TotalAmount: 495, Date: "2025-01-10"},
	}
	sales := []models.Sale{
		{ProductID: 2, Quantity: 50, Rate: 9, TotalAmount: 450, Date: "2025-01-11"},
	}

	st := ComputeProductStock(1, purchases, sales)

	assert.Equal(t, 10.0, st.TotalBought)
	assert.Zero(t, st.TotalSold)
	assert.Equal(t, 100.0, st.AvgPurchaseRate)
}

func TestComputeProductStockNegativeWhenOversold(t *testing.T) {
	purchases := []models.Purchase{
		{ProductID: 7, Quantity: 5, Rate: 20, TotalAmount: 100, Date: "2025-03-01"},
	}
	sales := []models.Sale{
		{ProductID: 7, Quantity: 8, Rate: 25, TotalAmount: 200, Date: "2025-03-02"},
	}

	st := ComputeProductStock(7, purchases, sales)

	// Inconsistent data is surfaced, not clamped.
	assert.Equal(t, -3.0, st.StockLeft)
	assert.Equal(t, -60.0, st.StockValue)
}

func TestComputeProductStockWeightedAverage(t *testing.T) {
	purchases := []models.Purchase{
		{ProductID: 3, Quantity: 10, Rate: 50, TotalAmount: 500, Date: "2025-01-01"},
		{ProductID: 3, Quantity: 30, Rate: 90, TotalAmount: 2700, Date: "2025-04-01"},
		{ProductID: 3, Quantity: 2.5, Rate: 44, TotalAmount: 110, Date: "2025-06-15"},
	}

	st := ComputeProductStock(3, purchases, nil)

	require.Greater(t, st.TotalBought, 0.0)
	assert.InDelta(t, 500+2700+110, st.AvgPurchaseRate*st.TotalBought, 1e-9)
}

func TestComputeProductStockProfitIsRetroactive(t *testing.T) {
	purchases := []models.Purchase{
		{ProductID: 1, Quantity: 100, Rate: 50, TotalAmount: 5000, Date: "2025-01-10"},
	}
	sales := []models.Sale{
		{ProductID: 1, Quantity: 30, Rate: 70, TotalAmount: 2100, Profit: 600, Date: "2025-02-01"},
	}

	before := ComputeProductStock(1, purchases, sales)
	require.Equal(t, 600.0, before.TotalProfit)

	// A later purchase at a higher rate moves the average, which rewrites the
	// reported profit of the untouched historical sale.
	purchases = append(purchases, models.Purchase{
		ProductID: 1, Quantity: 100, Rate: 70, TotalAmount: 7000, Date: "2025-03-01",
	})

	after := ComputeProductStock(1, purchases, sales)

	assert.Equal(t, 60.0, after.AvgPurchaseRate)
	assert.Equal(t, 30*(70.0-60.0), after.TotalProfit)
	assert.NotEqual(t, before.TotalProfit, after.TotalProfit)
}

func TestComputeCropInventoryCaseSensitiveGrouping(t *testing.T) {
	crops := []models.CropPurchase{
		{CropType: "Wheat", Quantity: 100, Rate: 30, TotalAmount: 3000, Date: "2025-05-01", Status: models.CropInStorage},
		{CropType: "wheat", Quantity: 40, Rate: 25, TotalAmount: 1000, Date: "2025-05-02", Status: models.CropInStorage},
	}

	items := ComputeCropInventory(crops)

	require.Len(t, items, 2)
	assert.Equal(t, "Wheat", items[0].CropType)
	assert.Equal(t, "wheat", items[1].CropType)
}

func TestComputeCropInventoryExcludesSold(t *testing.T) {
	crops := []models.CropPurchase{
		{CropType: "Rice", Quantity: 100, Rate: 30, TotalAmount: 3000, Date: "2024-01-01", Status: models.CropSold},
		{CropType: "Maize", Quantity: 50, Rate: 20, TotalAmount: 1000, Date: "2025-05-01", Status: models.CropInStorage},
	}

	items := ComputeCropInventory(crops)

	require.Len(t, items, 1)
	assert.Equal(t, "Maize", items[0].CropType)
}

func TestComputeCropInventoryAggregation(t *testing.T) {
	oldest := isoDaysFromNow(-10)
	crops := []models.CropPurchase{
		{CropType: "Wheat", Quantity: 100, Rate: 30, TotalAmount: 3000, Date: isoDaysFromNow(-3), Status: models.CropInStorage},
		{CropType: "Wheat", Quantity: 50, Rate: 36, TotalAmount: 1800, Date: oldest, Status: models.CropInStorage},
	}

	items := ComputeCropInventory(crops)

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, 150.0, item.TotalQuantity)
	assert.Equal(t, 4800.0, item.TotalCost)
	assert.Equal(t, oldest, item.OldestDate)
	assert.InDelta(t, 32.0, item.AvgRate, 1e-9)
	assert.Equal(t, 10, item.DaysInStorage)
}

func TestComputeCropInventoryZeroQuantityGroup(t *testing.T) {
	crops := []models.CropPurchase{
		{CropType: "Cotton", Quantity: 0, Rate: 0, TotalAmount: 0, Date: "2025-05-01", Status: models.CropInStorage},
	}

	items := ComputeCropInventory(crops)

	require.Len(t, items, 1)
	assert.Zero(t, items[0].AvgRate)
}

func TestComputeCustomerSummaries(t *testing.T) {
	sales := []models.Sale{
		{CustomerName: "Ali", CustomerPhone: "0300-1234567", CustomerAddress: "Multan Road", TotalAmount: 2000, RemainingAmount: 500, Date: "2025-01-05"},
		{CustomerName: "", TotalAmount: 900, RemainingAmount: 900, Date: "2025-01-06"},
		{CustomerName: "Ali", CustomerPhone: "0345-0000000", TotalAmount: 1000, RemainingAmount: 0, Date: "2025-03-01"},
	}

	summaries := ComputeCustomerSummaries(sales)

	require.Len(t, summaries, 1)
	ali := summaries[0]
	assert.Equal(t, "Ali", ali.Name)
	assert.Equal(t, 3000.0, ali.TotalPurchases)
	assert.Equal(t, 500.0, ali.OutstandingLoans)
	assert.Equal(t, "2025-03-01", ali.LastPurchase)
	// Contact details stick at the first occurrence.
	assert.Equal(t, "0300-1234567", ali.Phone)
	assert.Equal(t, "Multan Road", ali.Address)
}

func TestComputeCustomerSummariesDashFallbacks(t *testing.T) {
	sales := []models.Sale{
		{CustomerName: "Bashir", TotalAmount: 100, Date: "2025-01-05"},
	}

	summaries := ComputeCustomerSummaries(sales)

	require.Len(t, summaries, 1)
	assert.Equal(t, "-", summaries[0].Phone)
	assert.Equal(t, "-", summaries[0].Address)
}

func TestComputeNotificationsLowStockBoundary(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "Urea", Unit: "bags", MinStock: 10},
	}
	purchases := []models.Purchase{
		{ProductID: 1, Quantity: 9.99, Rate: 100, TotalAmount: 999, Date: "2025-01-01"},
	}

	notifications := ComputeNotifications(products, nil, purchases)

	require.Len(t, notifications, 1)
	assert.Equal(t, NotificationWarning, notifications[0].Type)
	assert.Equal(t, "Low Stock Alert", notifications[0].Title)
	assert.Contains(t, notifications[0].Message, "Urea is running low (9.99 bags)")

	// Exactly at the minimum is not low: the comparison is strict.
	purchases[0].Quantity = 10
	purchases[0].TotalAmount = 1000
	notifications = ComputeNotifications(products, nil, purchases)
	assert.Empty(t, notifications)
}

func TestComputeNotificationsOverdueLoan(t *testing.T) {
	yesterday := isoDaysFromNow(-1)
	sales := []models.Sale{
		{CustomerName: "Ali", RemainingAmount: 100, DueDate: &yesterday, Date: yesterday},
	}

	notifications := ComputeNotifications(nil, sales, nil)

	require.Len(t, notifications, 1)
	n := notifications[0]
	assert.Equal(t, NotificationDanger, n.Type)
	assert.Equal(t, "Overdue Loan", n.Title)
	assert.Contains(t, n.Message, "Ali - Rs. 100 overdue by")
	assert.Contains(t, n.Message, fmt.Sprintf("overdue by %d days", 1))
}

func TestComputeNotificationsNotYetDue(t *testing.T) {
	tomorrow := isoDaysFromNow(1)
	sales := []models.Sale{
		{CustomerName: "Ali", RemainingAmount: 100, DueDate: &tomorrow, Date: isoDaysFromNow(0)},
	}

	assert.Empty(t, ComputeNotifications(nil, sales, nil))
}

func TestComputeNotificationsSettledLoanIsQuiet(t *testing.T) {
	yesterday := isoDaysFromNow(-1)
	sales := []models.Sale{
		{CustomerName: "Ali", RemainingAmount: 0, DueDate: &yesterday, Date: yesterday},
		{CustomerName: "Raza", RemainingAmount: 300, Date: yesterday}, // no due date
	}

	assert.Empty(t, ComputeNotifications(nil, sales, nil))
}

func TestComputeNotificationsWarningsBeforeDangers(t *testing.T) {
	yesterday := isoDaysFromNow(-1)
	products := []models.Product{
		{ID: 1, Name: "DAP", Unit: "bags", MinStock: 5},
	}
	sales := []models.Sale{
		{ProductID: 99, CustomerName: "Ali", RemainingAmount: 100, DueDate: &yesterday, Date: yesterday},
	}

	notifications := ComputeNotifications(products, sales, nil)

	require.Len(t, notifications, 2)
	assert.Equal(t, NotificationWarning, notifications[0].Type)
	assert.Equal(t, NotificationDanger, notifications[1].Type)
}

package backup

import (
	"fmt"

	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Snapshot is the portable JSON backup of one shop: the four raw record
// collections, nothing derived. Derived views are recomputed after restore.
type Snapshot struct {
	Products      []SnapshotProduct      `json:"products"`
	Sales         []SnapshotSale         `json:"sales"`
	Purchases     []SnapshotPurchase     `json:"purchases"`
	CropPurchases []SnapshotCropPurchase `json:"crop_purchases"`
}

type SnapshotProduct struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	MinStock float64 `json:"min_stock"`
}

type SnapshotPurchase struct {
	ProductID   uint    `json:"product_id"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	TotalAmount float64 `json:"total_amount"`
	Date        string  `json:"date"`
	Supplier    string  `json:"supplier"`
	Notes       string  `json:"notes"`
}

type SnapshotSale struct {
	ProductID       uint    `json:"product_id"`
	Quantity        float64 `json:"quantity"`
	Rate            float64 `json:"rate"`
	TotalAmount     float64 `json:"total_amount"`
	Profit          float64 `json:"profit"`
	Date            string  `json:"date"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	AmountPaid      float64 `json:"amount_paid"`
	RemainingAmount float64 `json:"remaining_amount"`
	DueDate         *string `json:"due_date"`
	Notes           string  `json:"notes"`
}

type SnapshotCropPurchase struct {
	CropType    string  `json:"crop_type"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	TotalAmount float64 `json:"total_amount"`
	Date        string  `json:"date"`
	Supplier    string  `json:"supplier"`
	Notes       string  `json:"notes"`
	Status      models.CropStatus `json:"status"`
}

// GET /api/backup
func DownloadBackupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load products")
		}
		var sales []models.Sale
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}
		var purchases []models.Purchase
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load purchases")
		}
		var cropPurchases []models.CropPurchase
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&cropPurchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load crop purchases")
		}

		snapshot := Snapshot{
			Products:      make([]SnapshotProduct, 0, len(products)),
			Sales:         make([]SnapshotSale, 0, len(sales)),
			Purchases:     make([]SnapshotPurchase, 0, len(purchases)),
			CropPurchases: make([]SnapshotCropPurchase, 0, len(cropPurchases)),
		}
		for _, p := range products {
			snapshot.Products = append(snapshot.Products, SnapshotProduct{
				ID: p.ID, Name: p.Name, Category: p.Category, Unit: p.Unit, MinStock: p.MinStock,
			})
		}
		for _, p := range purchases {
			snapshot.Purchases = append(snapshot.Purchases, SnapshotPurchase{
				ProductID: p.ProductID, Quantity: p.Quantity, Rate: p.Rate, TotalAmount: p.TotalAmount,
				Date: p.Date, Supplier: p.Supplier, Notes: p.Notes,
			})
		}
		for _, s := range sales {
			snapshot.Sales = append(snapshot.Sales, SnapshotSale{
				ProductID: s.ProductID, Quantity: s.Quantity, Rate: s.Rate, TotalAmount: s.TotalAmount,
				Profit: s.Profit, Date: s.Date, CustomerName: s.CustomerName, CustomerPhone: s.CustomerPhone,
				CustomerAddress: s.CustomerAddress, PaymentStatus: s.PaymentStatus, AmountPaid: s.AmountPaid,
				RemainingAmount: s.RemainingAmount, DueDate: s.DueDate, Notes: s.Notes,
			})
		}
		for _, cp := range cropPurchases {
			snapshot.CropPurchases = append(snapshot.CropPurchases, SnapshotCropPurchase{
				CropType: cp.CropType, Quantity: cp.Quantity, Rate: cp.Rate, TotalAmount: cp.TotalAmount,
				Date: cp.Date, Supplier: cp.Supplier, Notes: cp.Notes, Status: cp.Status,
			})
		}

		return c.JSON(snapshot)
	}
}

// POST /api/backup/restore
// Imports a snapshot into the shop in one transaction. Restored products get
// fresh ids; sales and purchases are remapped through the product id carried
// in the snapshot. Existing records are left alone, the snapshot is appended.
func RestoreBackupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var snapshot Snapshot
		if err := c.BodyParser(&snapshot); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid backup file")
		}

		if snapshot.Products == nil || snapshot.Sales == nil || snapshot.Purchases == nil {
			return fiber.NewError(fiber.StatusBadRequest, "backup is missing products, sales or purchases")
		}

		for _, s := range snapshot.Sales {
			switch s.PaymentStatus {
			case models.PaymentCash, models.PaymentLoan, models.PaymentPartial:
			default:
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown payment_status %q", s.PaymentStatus))
			}
		}
		for _, cp := range snapshot.CropPurchases {
			switch cp.Status {
			case models.CropInStorage, models.CropSold:
			default:
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown crop status %q", cp.Status))
			}
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			productIDs := make(map[uint]uint, len(snapshot.Products))
			for _, sp := range snapshot.Products {
				product := models.Product{
					ShopID:   shopID,
					Name:     sp.Name,
					Category: sp.Category,
					Unit:     sp.Unit,
					MinStock: sp.MinStock,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				productIDs[sp.ID] = product.ID
			}

			for _, sp := range snapshot.Purchases {
				newID, ok := productIDs[sp.ProductID]
				if !ok {
					return fmt.Errorf("purchase references unknown product %d", sp.ProductID)
				}
				purchase := models.Purchase{
					ShopID: shopID, ProductID: newID,
					Quantity: sp.Quantity, Rate: sp.Rate, TotalAmount: sp.TotalAmount,
					Date: sp.Date, Supplier: sp.Supplier, Notes: sp.Notes,
				}
				if err := tx.Create(&purchase).Error; err != nil {
					return err
				}
			}

			for _, ss := range snapshot.Sales {
				newID, ok := productIDs[ss.ProductID]
				if !ok {
					return fmt.Errorf("sale references unknown product %d", ss.ProductID)
				}
				sale := models.Sale{
					ShopID: shopID, ProductID: newID,
					Quantity: ss.Quantity, Rate: ss.Rate, TotalAmount: ss.TotalAmount, Profit: ss.Profit,
					Date: ss.Date, CustomerName: ss.CustomerName, CustomerPhone: ss.CustomerPhone,
					CustomerAddress: ss.CustomerAddress, PaymentStatus: ss.PaymentStatus,
					AmountPaid: ss.AmountPaid, RemainingAmount: ss.RemainingAmount,
					DueDate: ss.DueDate, Notes: ss.Notes,
				}
				if err := tx.Create(&sale).Error; err != nil {
					return err
				}
			}

			for _, scp := range snapshot.CropPurchases {
				cropPurchase := models.CropPurchase{
					ShopID: shopID, CropType: scp.CropType,
					Quantity: scp.Quantity, Rate: scp.Rate, TotalAmount: scp.TotalAmount,
					Date: scp.Date, Supplier: scp.Supplier, Notes: scp.Notes, Status: scp.Status,
				}
				if err := tx.Create(&cropPurchase).Error; err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "restore failed: "+err.Error())
		}

		return c.JSON(fiber.Map{
			"restored_products":       len(snapshot.Products),
			"restored_purchases":      len(snapshot.Purchases),
			"restored_sales":          len(snapshot.Sales),
			"restored_crop_purchases": len(snapshot.CropPurchases),
		})
	}
}

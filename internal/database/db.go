package database

import (
	"agrostore-backend/internal/config"
	"agrostore-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config, log *zap.Logger) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Product{},
		&models.Purchase{},
		&models.Sale{},
		&models.CropPurchase{},
	)
	if err != nil {
		log.Fatal("auto-migrate failed", zap.Error(err))
	}

	log.Info("database connected, schema migrated")
}

package database

import (
	"fmt"

	"github.com/sangkips/phonehub-pos/internal/config"
	"github.com/sangkips/phonehub-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to PostgreSQL", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the inventory and sales tables
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.PhoneModel{},
		&entity.PhoneVariant{},
		&entity.Accessory{},
		&entity.SaleRecord{},
		&entity.SaleItemRecord{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDemoCatalog fills an empty inventory with a few phones and
// accessories so a fresh terminal has something to sell
func SeedDemoCatalog(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.PhoneModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count phone models: %w", err)
	}
	if count > 0 {
		log.Info("inventory already present, skipping seed", zap.Int64("phone_models", count))
		return nil
	}

	price := decimal.RequireFromString
	models := []entity.PhoneModel{
		{Brand: "Apple", ModelName: "iPhone 13", Variants: []entity.PhoneVariant{
			{Color: "Blue", RAM: 4, Storage: 128, IMEI: "356789100000001", SellPrice: price("2499.00"), CostPrice: price("2100.00"), Quantity: 3},
			{Color: "Midnight", RAM: 4, Storage: 256, IMEI: "356789100000002", SellPrice: price("2899.00"), CostPrice: price("2450.00"), Quantity: 2},
		}},
		{Brand: "Samsung", ModelName: "Galaxy A15", Variants: []entity.PhoneVariant{
			{Color: "Black", RAM: 6, Storage: 128, IMEI: "356789100000003", SellPrice: price("799.00"), CostPrice: price("620.00"), Quantity: 5},
		}},
		{Brand: "Xiaomi", ModelName: "Redmi Note 13", Variants: []entity.PhoneVariant{
			{Color: "Green", RAM: 8, Storage: 256, IMEI: "356789100000004", SellPrice: price("999.00"), CostPrice: price("780.00"), Quantity: 4},
		}},
	}
	accessories := []entity.Accessory{
		{Name: "USB-C Cable 1m", SKU: "CB-USBC-1M", Brand: "Anker", Subcategory: "Cables", SellPrice: price("19.90"), CostPrice: price("6.50"), Quantity: 40},
		{Name: "20W Fast Charger", SKU: "CH-20W", Brand: "Apple", Subcategory: "Chargers", SellPrice: price("89.00"), CostPrice: price("55.00"), Quantity: 15},
		{Name: "Tempered Glass iPhone 13", SKU: "TG-IP13", Brand: "Spigen", Subcategory: "Screen Protectors", SellPrice: price("25.00"), CostPrice: price("7.00"), Quantity: 30},
		{Name: "Clear Case Galaxy A15", SKU: "CS-A15", Brand: "Spigen", Subcategory: "Cases", SellPrice: price("39.00"), CostPrice: price("12.00"), Quantity: 10},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models).Error; err != nil {
			return err
		}
		return tx.Create(&accessories).Error
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo catalog: %w", err)
	}

	log.Info("demo catalog seeded", zap.Int("phone_models", len(models)), zap.Int("accessories", len(accessories)))
	return nil
}

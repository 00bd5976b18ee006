package database

import (
	"log"

	"wms-backend/internal/config"
	"wms-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("database connected, migration complete")
}

// InitTest opens an in-memory SQLite database for package tests. The pool is
// pinned to one connection so every query sees the same :memory: database.
func InitTest() error {
	var err error
	DB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return err
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	return migrate(DB)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Part{},
		&models.InventoryRecord{},
		&models.InventoryReservation{},
		&models.Order{},
		&models.OrderPart{},
		&models.InventoryPicklist{},
		&models.InventoryPicklistItem{},
		&models.ManufacturingList{},
		&models.ManufacturingListItem{},
		&models.ManufacturingTask{},
		&models.QAErrorReport{},
	)
}

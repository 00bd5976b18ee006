package models

import "time"

// Part: static catalog entry, keyed by SKU-color (base SKU + color variant).
type Part struct {
	ID          uint   `gorm:"primaryKey"`
	SKUColor    string `gorm:"size:50;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
	BoxQuantity int    `gorm:"not null;default:1"` // units per box
	Weight      float64
	CrateSize   string `gorm:"size:20"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package models

import "time"

// InventoryRecord: on-hand stock for one (location, SKU-color) pair.
// Multiple locations may hold the same SKU-color; availability aggregates them.
type InventoryRecord struct {
	ID       uint   `gorm:"primaryKey"`
	Location string `gorm:"size:50;not null;uniqueIndex:idx_inventory_location_sku"`
	SKUColor string `gorm:"size:50;not null;uniqueIndex:idx_inventory_location_sku;index"`

	QuantityOnHand int `gorm:"not null;default:0"`
	// QuantityReserved is the latest manufacturing shortfall claimed against
	// this SKU-color. Non-zero rows are excluded from fresh availability.
	QuantityReserved int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryReservation: append-only ledger of shortfall claims, so the
// reserved state on InventoryRecord stays auditable.
type InventoryReservation struct {
	ID        uint   `gorm:"primaryKey"`
	SKUColor  string `gorm:"size:50;index;not null"`
	OrderID   *uint  `gorm:"index"`
	TaskID    *uint  `gorm:"index"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
}

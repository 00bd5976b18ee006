package models

import "time"

// InventoryPicklist: what can be gathered from stock for one order.
// At most one per order (get-or-create keyed on OrderID).
type InventoryPicklist struct {
	ID         uint `gorm:"primaryKey"`
	OrderID    uint `gorm:"uniqueIndex;not null"`
	Order      Order
	Complete   bool  `gorm:"not null;default:false"`
	AssignedTo *uint // employee picking this list
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []InventoryPicklistItem `gorm:"foreignKey:PicklistID;constraint:OnDelete:CASCADE"`
}

type InventoryPicklistItem struct {
	ID         uint   `gorm:"primaryKey"`
	PicklistID uint   `gorm:"index;not null"`
	SKUColor   string `gorm:"size:50;index;not null"`
	Amount     int    `gorm:"not null"`
	Picked     bool   `gorm:"not null;default:false"`
	LocationID *uint  // InventoryRecord the units were taken from
	PickedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

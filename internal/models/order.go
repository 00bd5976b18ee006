package models

import "time"

type OrderStatus string

const (
	OrderNotStarted OrderStatus = "not_started"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
)

// Order: a customer order identified by an external order number.
type Order struct {
	ID          uint        `gorm:"primaryKey"`
	OrderNumber string      `gorm:"size:50;uniqueIndex;not null"`
	Status      OrderStatus `gorm:"size:20;not null;default:not_started"`
	DueDate     time.Time   `gorm:"index;not null"`
	StartTime   *time.Time
	EndTime     *time.Time
	ShipTime    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Parts []OrderPart `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderPart: one demand line. The same SKU-color may appear on several lines
// of one order; reconciliation sums them.
type OrderPart struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null"`
	SKUColor  string `gorm:"size:50;index;not null"`
	Quantity  int    `gorm:"not null"`
	Fulfilled bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

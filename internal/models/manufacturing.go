package models

import "time"

// TaskStatus: manufacturing task state machine states. Tasks advance through
// the fixed production sequence; "error" is a side state reachable from any
// in-progress state, "in_progress" is the post-QA holding state.
type TaskStatus string

const (
	StatusNesting      TaskStatus = "nesting"
	StatusBending      TaskStatus = "bending"
	StatusCutting      TaskStatus = "cutting"
	StatusWelding      TaskStatus = "welding"
	StatusProductionQA TaskStatus = "production_qa"
	StatusPainting     TaskStatus = "painting"
	StatusPaintingQA   TaskStatus = "painting_qa"
	StatusCompleted    TaskStatus = "completed"
	StatusPickAndPack  TaskStatus = "pick_and_pack"
	StatusInProgress   TaskStatus = "in_progress"
	StatusError        TaskStatus = "error"
)

// ManufacturingList: shortfall quantities that must be produced for one order.
// At most one per order, created only when unmet demand exists.
type ManufacturingList struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"uniqueIndex;not null"`
	Order     Order
	Status    string `gorm:"size:50;default:open"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []ManufacturingListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

type ManufacturingListItem struct {
	ID          uint   `gorm:"primaryKey"`
	ListID      uint   `gorm:"index;not null"`
	SKUColor    string `gorm:"size:50;index;not null"`
	Amount      int    `gorm:"not null"`
	ProcessStep string `gorm:"size:30"`
	Progress    string `gorm:"size:30"`
	TaskID      *uint  `gorm:"index"` // ManufacturingTask covering this shortfall
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ManufacturingTask: the unit of production work. Aggregates shortfall for one
// SKU-color across orders, so it is not one-per-order.
type ManufacturingTask struct {
	ID              uint       `gorm:"primaryKey"`
	SKUColor        string     `gorm:"size:50;index;not null"`
	Quantity        int        `gorm:"not null"`
	DueDate         time.Time  `gorm:"index"`
	Status          TaskStatus `gorm:"size:20;not null;default:nesting"`
	RequiresWelding bool       `gorm:"not null;default:false"`

	NestingStart *time.Time
	NestingEnd   *time.Time
	BendingStart *time.Time
	BendingEnd   *time.Time
	CuttingStart *time.Time
	CuttingEnd   *time.Time
	WeldingStart *time.Time
	WeldingEnd   *time.Time

	NestingEmployee *uint
	BendingEmployee *uint
	CuttingEmployee *uint
	WeldingEmployee *uint

	ProdQA  bool `gorm:"not null;default:false"`
	PaintQA bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import "time"

// QAErrorReport: a defect raised against a manufacturing task. Deleted when
// resolved; no history is retained.
type QAErrorReport struct {
	ID           uint `gorm:"primaryKey"`
	TaskID       uint `gorm:"index;not null"`
	Task         ManufacturingTask `gorm:"foreignKey:TaskID"`
	Subject      string            `gorm:"size:100;not null"`
	Comment      string            `gorm:"size:1000"`
	ReportedBy   uint              `gorm:"not null"`
	ReporterName string            `gorm:"size:100"` // denormalized so reports render without a user join
	CreatedAt    time.Time
}

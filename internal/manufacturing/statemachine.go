package manufacturing

import (
	"errors"
	"fmt"
	"time"

	"wms-backend/internal/apperr"
	"wms-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockTask loads a task under row-level locking so concurrent transitions on
// the same task serialize. SQLite (tests) has no FOR UPDATE; its writes are
// single-writer anyway.
func lockTask(tx *gorm.DB, taskID uint) (*models.ManufacturingTask, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var task models.ManufacturingTask
	if err := q.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %d: %w", taskID, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &task, nil
}

// Advance moves a task to its next production stage: nesting → bending →
// cutting → [welding] → production_qa. The welding stage only runs for tasks
// flagged RequiresWelding. The completed stage's end timestamp and operator
// are recorded, and the next stage's start timestamp is stamped.
//
// production_qa is terminal for Advance; from there the task moves through the
// QA gate operations instead.
func Advance(db *gorm.DB, taskID uint, employeeID uint) (*models.ManufacturingTask, error) {
	var out *models.ManufacturingTask
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}

		now := time.Now()
		switch task.Status {
		case models.StatusNesting:
			task.NestingEnd = &now
			task.NestingEmployee = &employeeID
			task.BendingStart = &now
			task.Status = models.StatusBending
		case models.StatusBending:
			task.BendingEnd = &now
			task.BendingEmployee = &employeeID
			task.CuttingStart = &now
			task.Status = models.StatusCutting
		case models.StatusCutting:
			task.CuttingEnd = &now
			task.CuttingEmployee = &employeeID
			if task.RequiresWelding {
				task.WeldingStart = &now
				task.Status = models.StatusWelding
			} else {
				task.Status = models.StatusProductionQA
			}
		case models.StatusWelding:
			task.WeldingEnd = &now
			task.WeldingEmployee = &employeeID
			task.Status = models.StatusProductionQA
		case models.StatusProductionQA:
			return fmt.Errorf("task %d is awaiting production QA: %w", taskID, apperr.ErrConflict)
		default:
			return fmt.Errorf("task %d is not in a production stage (%s): %w", taskID, task.Status, apperr.ErrConflict)
		}

		if err := tx.Save(task).Error; err != nil {
			return err
		}
		out = task
		return nil
	})
	return out, err
}

// qaFlag maps the literal values the QA dashboard sends onto a boolean.
// Anything else leaves the flag unchanged.
func qaFlag(current bool, literal string) bool {
	switch literal {
	case "completed":
		return true
	case "pending":
		return false
	default:
		return current
	}
}

// SubmitQA records the production and paint QA results. The status always
// lands on in_progress, pass or fail; a genuine QA failure is raised through
// ReportError instead.
func SubmitQA(db *gorm.DB, taskID uint, prodQA, paintQA string) (*models.ManufacturingTask, error) {
	var out *models.ManufacturingTask
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}

		task.ProdQA = qaFlag(task.ProdQA, prodQA)
		task.PaintQA = qaFlag(task.PaintQA, paintQA)
		task.Status = models.StatusInProgress

		if err := tx.Save(task).Error; err != nil {
			return err
		}
		out = task
		return nil
	})
	return out, err
}

// ReportError flags a task as errored and files a QA error report. Allowed
// from any state.
func ReportError(db *gorm.DB, taskID uint, subject, comment string, reporterID uint, reporterName string) (*models.QAErrorReport, error) {
	var out *models.QAErrorReport
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}

		task.Status = models.StatusError
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		report := models.QAErrorReport{
			TaskID:       task.ID,
			Subject:      subject,
			Comment:      comment,
			ReportedBy:   reporterID,
			ReporterName: reporterName,
		}
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		out = &report
		return nil
	})
	return out, err
}

// ResolveError deletes a QA error report. It does not touch the task's
// status; moving the task out of error takes an explicit UpdateStatusFromError.
func ResolveError(db *gorm.DB, errorID uint) error {
	res := db.Delete(&models.QAErrorReport{}, errorID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("error report %d: %w", errorID, apperr.ErrNotFound)
	}
	return nil
}

// UpdateStatusFromError moves a task out of the error state. Only legal while
// the task is errored.
//
// TODO: validate newStatus against the known stage set once the QA dashboard
// stops sending free-text statuses.
func UpdateStatusFromError(db *gorm.DB, taskID uint, newStatus string) (*models.ManufacturingTask, error) {
	var out *models.ManufacturingTask
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}

		if task.Status != models.StatusError {
			return fmt.Errorf("task %d is not in error (%s): %w", taskID, task.Status, apperr.ErrConflict)
		}

		task.Status = models.TaskStatus(newStatus)
		if err := tx.Save(task).Error; err != nil {
			return err
		}
		out = task
		return nil
	})
	return out, err
}

// SendToPickAndPack hands a finished task over to pick-and-pack and makes sure
// the target order has a picklist to receive the produced units. The caller
// names the order; the task itself aggregates shortfall across orders and has
// no single originating order.
func SendToPickAndPack(db *gorm.DB, taskID uint, orderID uint) (*models.InventoryPicklist, error) {
	var out *models.InventoryPicklist
	err := db.Transaction(func(tx *gorm.DB) error {
		task, err := lockTask(tx, taskID)
		if err != nil {
			return err
		}

		if task.Status != models.StatusInProgress {
			return fmt.Errorf("task %d must pass QA before pick and pack (%s): %w", taskID, task.Status, apperr.ErrConflict)
		}

		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %d: %w", orderID, apperr.ErrInvalidInput)
			}
			return err
		}

		task.Status = models.StatusPickAndPack
		if err := tx.Save(task).Error; err != nil {
			return err
		}

		picklist := models.InventoryPicklist{OrderID: order.ID}
		if err := tx.Where(models.InventoryPicklist{OrderID: order.ID}).
			FirstOrCreate(&picklist).Error; err != nil {
			return err
		}
		out = &picklist
		return nil
	})
	return out, err
}

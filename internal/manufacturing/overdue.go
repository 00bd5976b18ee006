package manufacturing

import (
	"errors"
	"time"

	"wms-backend/internal/models"
	"wms-backend/internal/reconcile"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GenerateOverdueTasks is the bulk path behind the periodic scan: every
// non-completed order past its due date is reconciled, then all manufacturing
// shortfall not yet covered by a task is grouped by SKU-color and folded into
// one task per SKU. Quantities add up across orders, so tasks aggregate
// shortfall rather than belonging to a single order.
//
// Returns the number of tasks created or topped up.
func GenerateOverdueTasks(db *gorm.DB) (int, error) {
	var overdue []models.Order
	if err := db.
		Where("due_date < ? AND status <> ?", time.Now(), models.OrderCompleted).
		Find(&overdue).Error; err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	orderIDs := make([]uint, 0, len(overdue))
	dueByOrder := make(map[uint]time.Time, len(overdue))
	for _, o := range overdue {
		orderIDs = append(orderIDs, o.ID)
		dueByOrder[o.ID] = o.DueDate
	}

	// Make sure every overdue order has its lists. Only never-started orders
	// are reconciled here; a re-run on an already-reconciled order would
	// append its zero-inventory demand a second time.
	for _, o := range overdue {
		if o.Status != models.OrderNotStarted {
			continue
		}
		if _, err := reconcile.Reconcile(db, o.ID); err != nil {
			log.Error().Err(err).Uint("order_id", o.ID).Msg("overdue scan: reconcile failed")
		}
	}

	// Shortfall items not yet covered by a task, restricted to overdue orders.
	var items []models.ManufacturingListItem
	if err := db.
		Joins("JOIN manufacturing_lists ON manufacturing_lists.id = manufacturing_list_items.list_id").
		Where("manufacturing_list_items.task_id IS NULL AND manufacturing_lists.order_id IN ?", orderIDs).
		Find(&items).Error; err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	type bucket struct {
		quantity int
		itemIDs  []uint
		earliest time.Time
	}
	bySKU := map[string]*bucket{}

	var lists []models.ManufacturingList
	if err := db.Where("order_id IN ?", orderIDs).Find(&lists).Error; err != nil {
		return 0, err
	}
	orderByList := make(map[uint]uint, len(lists))
	for _, l := range lists {
		orderByList[l.ID] = l.OrderID
	}

	for _, it := range items {
		b, ok := bySKU[it.SKUColor]
		if !ok {
			b = &bucket{earliest: dueByOrder[orderByList[it.ListID]]}
			bySKU[it.SKUColor] = b
		}
		b.quantity += it.Amount
		b.itemIDs = append(b.itemIDs, it.ID)
		if due := dueByOrder[orderByList[it.ListID]]; due.Before(b.earliest) {
			b.earliest = due
		}
	}

	touched := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for sku, b := range bySKU {
			// One active task per SKU; finished tasks do not absorb new demand.
			var task models.ManufacturingTask
			err := tx.
				Where("sku_color = ? AND status NOT IN ?", sku,
					[]models.TaskStatus{models.StatusCompleted, models.StatusPickAndPack}).
				First(&task).Error
			switch {
			case err == nil:
				task.Quantity += b.quantity
				if b.earliest.Before(task.DueDate) {
					task.DueDate = b.earliest
				}
				if err := tx.Save(&task).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				task = models.ManufacturingTask{
					SKUColor: sku,
					Quantity: b.quantity,
					DueDate:  b.earliest,
					Status:   models.StatusNesting,
				}
				if err := tx.Create(&task).Error; err != nil {
					return err
				}
			default:
				return err
			}

			if err := tx.Model(&models.ManufacturingListItem{}).
				Where("id IN ?", b.itemIDs).
				Update("task_id", task.ID).Error; err != nil {
				return err
			}

			taskRef := task.ID
			if err := tx.Create(&models.InventoryReservation{
				SKUColor: sku,
				TaskID:   &taskRef,
				Quantity: b.quantity,
			}).Error; err != nil {
				return err
			}
			touched++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int("tasks", touched).Int("orders", len(overdue)).Msg("overdue scan: tasks generated")
	return touched, nil
}

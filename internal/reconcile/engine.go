package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"wms-backend/internal/apperr"
	"wms-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Result summarizes one reconciliation run. Quantities are keyed by SKU-color.
type Result struct {
	OrderID             uint
	PicklistID          *uint
	ManufacturingListID *uint
	PickedQty           map[string]int
	ManufactureQty      map[string]int
	Warnings            []string
}

// Reconcile splits an order's demand between what can be picked from on-hand
// inventory and what must be manufactured.
//
// Re-running for the same order extends rather than duplicates: the picklist
// and manufacturing list are get-or-create keyed on the order. A demanded
// SKU-color missing from the part catalog is skipped with a warning; the rest
// of the order still reconciles.
func Reconcile(db *gorm.DB, orderID uint) (*Result, error) {
	m := orderLocks.lock(orderID)
	defer m.Unlock()

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, apperr.ErrNotFound)
		}
		return nil, err
	}

	var lines []models.OrderPart
	if err := db.Where("order_id = ?", order.ID).Find(&lines).Error; err != nil {
		return nil, err
	}

	res := &Result{
		OrderID:        order.ID,
		PickedQty:      map[string]int{},
		ManufactureQty: map[string]int{},
	}
	if len(lines) == 0 {
		return res, nil
	}

	// Total demand per SKU-color; an order may repeat a SKU across lines.
	demand := map[string]int{}
	for _, l := range lines {
		demand[l.SKUColor] += l.Quantity
	}

	skus := make([]string, 0, len(demand))
	for sku := range demand {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	// Demanded SKUs with no catalog entry fail individually, not the run.
	known := make([]string, 0, len(skus))
	for _, sku := range skus {
		var count int64
		if err := db.Model(&models.Part{}).Where("sku_color = ?", sku).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			warn := fmt.Sprintf("SKU %q has no part catalog entry, skipped", sku)
			res.Warnings = append(res.Warnings, warn)
			log.Warn().Uint("order_id", order.ID).Str("sku", sku).Msg("reconcile: unknown SKU skipped")
			continue
		}
		known = append(known, sku)
	}
	if len(known) == 0 {
		return res, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Rows already earmarked for an unmet shortfall are not available.
		var rows []models.InventoryRecord
		if err := tx.
			Where("sku_color IN ? AND quantity_on_hand > 0 AND quantity_reserved = 0", known).
			Find(&rows).Error; err != nil {
			return err
		}

		available := map[string]int{}
		for _, r := range rows {
			available[r.SKUColor] += r.QuantityOnHand
		}

		var pickItems []models.InventoryPicklistItem
		var mfgItems []models.ManufacturingListItem

		for _, sku := range known {
			demanded := demand[sku]
			avail, hasStock := available[sku]

			if !hasStock {
				// Nothing on hand (or everything already claimed): the full
				// quantity goes to manufacturing.
				res.ManufactureQty[sku] = demanded
				mfgItems = append(mfgItems, models.ManufacturingListItem{
					SKUColor:    sku,
					Amount:      demanded,
					ProcessStep: string(models.StatusNesting),
					Progress:    "pending",
				})
				continue
			}

			pickQty := demanded
			if avail < demanded {
				pickQty = avail

				shortfall := demanded - avail
				res.ManufactureQty[sku] = shortfall
				mfgItems = append(mfgItems, models.ManufacturingListItem{
					SKUColor:    sku,
					Amount:      shortfall,
					ProcessStep: string(models.StatusNesting),
					Progress:    "pending",
				})

				// Claim the SKU: the latest shortfall overwrites any previous
				// reservation on every row of this SKU, and subsequent runs
				// exclude it from availability.
				if err := tx.Model(&models.InventoryRecord{}).
					Where("sku_color = ?", sku).
					Update("quantity_reserved", shortfall).Error; err != nil {
					return err
				}
				orderRef := order.ID
				if err := tx.Create(&models.InventoryReservation{
					SKUColor: sku,
					OrderID:  &orderRef,
					Quantity: shortfall,
				}).Error; err != nil {
					return err
				}
			}

			res.PickedQty[sku] = pickQty
			pickItems = append(pickItems, models.InventoryPicklistItem{
				SKUColor: sku,
				Amount:   pickQty,
			})
		}

		// One picklist per order, created only when something is pickable.
		if len(pickItems) > 0 {
			picklist := models.InventoryPicklist{OrderID: order.ID}
			if err := tx.Where(models.InventoryPicklist{OrderID: order.ID}).
				FirstOrCreate(&picklist).Error; err != nil {
				return err
			}
			for i := range pickItems {
				pickItems[i].PicklistID = picklist.ID
			}
			if err := tx.Create(&pickItems).Error; err != nil {
				return err
			}
			res.PicklistID = &picklist.ID
		}

		if len(mfgItems) > 0 {
			list := models.ManufacturingList{OrderID: order.ID}
			if err := tx.Where(models.ManufacturingList{OrderID: order.ID}).
				FirstOrCreate(&list).Error; err != nil {
				return err
			}
			for i := range mfgItems {
				mfgItems[i].ListID = list.ID
			}
			if err := tx.Create(&mfgItems).Error; err != nil {
				return err
			}
			res.ManufacturingListID = &list.ID
		}

		if order.Status == models.OrderNotStarted {
			now := time.Now()
			return tx.Model(&order).
				Updates(map[string]interface{}{"status": models.OrderInProgress, "start_time": &now}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("order_id", order.ID).
		Int("picked_skus", len(res.PickedQty)).
		Int("manufacture_skus", len(res.ManufactureQty)).
		Int("warnings", len(res.Warnings)).
		Msg("reconcile: order processed")

	return res, nil
}

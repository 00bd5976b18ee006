package picklist

import (
	"time"

	"wms-backend/internal/auth"
	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/picklists?complete=false
func ListPicklistsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Items").Preload("Order").Order("id")
		switch c.Query("complete") {
		case "true":
			q = q.Where("complete = ?", true)
		case "false":
			q = q.Where("complete = ?", false)
		}

		var lists []models.InventoryPicklist
		if err := q.Find(&lists).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list picklists")
		}
		return c.JSON(lists)
	}
}

// POST /api/picklists/:id/assign
// Assigns the authenticated employee to the picklist.
func AssignPicklistHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid picklist id")
		}

		employeeID, _, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var list models.InventoryPicklist
		if err := database.DB.First(&list, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "picklist not found")
		}

		list.AssignedTo = &employeeID
		if err := database.DB.Save(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not assign picklist")
		}
		return c.JSON(fiber.Map{"picklist_id": list.ID, "assigned_to": employeeID})
	}
}

type PickItemRequest struct {
	LocationID *uint `json:"location_id"` // InventoryRecord the units came from
}

// POST /api/picklists/items/:id/pick
// Marks an item picked, decrements the source location and completes the
// picklist when its last item is picked.
func PickItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid picklist item id")
		}

		var body PickItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var item models.InventoryPicklistItem
		if err := database.DB.First(&item, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "picklist item not found")
		}
		if item.Picked {
			return fiber.NewError(fiber.StatusBadRequest, "item is already picked")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			item.Picked = true
			item.PickedAt = &now
			item.LocationID = body.LocationID
			if err := tx.Save(&item).Error; err != nil {
				return err
			}

			if body.LocationID != nil {
				if err := tx.Model(&models.InventoryRecord{}).
					Where("id = ? AND quantity_on_hand >= ?", *body.LocationID, item.Amount).
					Update("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", item.Amount)).Error; err != nil {
					return err
				}
			}

			var remaining int64
			if err := tx.Model(&models.InventoryPicklistItem{}).
				Where("picklist_id = ? AND picked = ?", item.PicklistID, false).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				return tx.Model(&models.InventoryPicklist{}).
					Where("id = ?", item.PicklistID).
					Update("complete", true).Error
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not pick item")
		}

		return c.JSON(fiber.Map{
			"item_id":   item.ID,
			"picked":    true,
			"picked_at": item.PickedAt,
		})
	}
}

package reconcile

import (
	"errors"

	"wms-backend/internal/apperr"
	"wms-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type GenerateListsRequest struct {
	OrderID uint `json:"orderID"`
}

// POST /orders/generateLists/
// Per-SKU failures are reported in the warnings list, not as an error status.
func GenerateListsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateListsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.OrderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "orderID is required")
		}

		res, err := Reconcile(database.DB, body.OrderID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.ToHTTP(err, "order not found")
			}
			log.Error().Err(err).Uint("order_id", body.OrderID).Msg("generateLists failed")
			return apperr.ToHTTP(err, "")
		}

		resp := fiber.Map{
			"detail":         "inventory picklist and manufacturing list generated",
			"picked":         res.PickedQty,
			"to_manufacture": res.ManufactureQty,
		}
		if res.PicklistID != nil {
			resp["picklist_id"] = *res.PicklistID
		}
		if res.ManufacturingListID != nil {
			resp["manufacturing_list_id"] = *res.ManufacturingListID
		}
		if len(res.Warnings) > 0 {
			resp["warnings"] = res.Warnings
		}
		return c.JSON(resp)
	}
}

package catalog

import (
	"strings"

	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateInventoryRequest struct {
	Location       string `json:"location"`
	SKUColor       string `json:"sku_color"`
	QuantityOnHand int    `json:"quantity_on_hand"`
}

type AdjustInventoryRequest struct {
	QuantityOnHand *int `json:"quantity_on_hand"`
}

// POST /api/inventory
func CreateInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInventoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Location = strings.TrimSpace(body.Location)
		body.SKUColor = strings.TrimSpace(body.SKUColor)
		if body.Location == "" || body.SKUColor == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location and sku_color are required")
		}
		if body.QuantityOnHand < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity_on_hand cannot be negative")
		}

		var count int64
		database.DB.Model(&models.Part{}).Where("sku_color = ?", body.SKUColor).Count(&count)
		if count == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "unknown SKU-color, create the part first")
		}

		record := models.InventoryRecord{
			Location:       body.Location,
			SKUColor:       body.SKUColor,
			QuantityOnHand: body.QuantityOnHand,
		}
		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "an inventory record for this location and SKU already exists")
		}

		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

// GET /api/inventory?sku_color=...
func ListInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("sku_color, location")
		if sku := c.Query("sku_color"); sku != "" {
			q = q.Where("sku_color = ?", sku)
		}

		var records []models.InventoryRecord
		if err := q.Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list inventory")
		}
		return c.JSON(records)
	}
}

// PUT /api/inventory/:id
func AdjustInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid inventory id")
		}

		var body AdjustInventoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.QuantityOnHand == nil || *body.QuantityOnHand < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity_on_hand is required and cannot be negative")
		}

		var record models.InventoryRecord
		if err := database.DB.First(&record, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "inventory record not found")
		}

		record.QuantityOnHand = *body.QuantityOnHand
		if err := database.DB.Save(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update inventory")
		}
		return c.JSON(record)
	}
}

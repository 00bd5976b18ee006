package catalog

import (
	"strings"

	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePartRequest struct {
	SKUColor    string  `json:"sku_color"`
	Description string  `json:"description"`
	BoxQuantity int     `json:"box_quantity"`
	Weight      float64 `json:"weight"`
	CrateSize   string  `json:"crate_size"`
}

type UpdatePartRequest struct {
	Description *string  `json:"description"`
	BoxQuantity *int     `json:"box_quantity"`
	Weight      *float64 `json:"weight"`
	CrateSize   *string  `json:"crate_size"`
}

// POST /api/parts
func CreatePartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.SKUColor = strings.TrimSpace(body.SKUColor)
		if body.SKUColor == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sku_color is required")
		}
		if body.BoxQuantity <= 0 {
			body.BoxQuantity = 1
		}

		part := models.Part{
			SKUColor:    body.SKUColor,
			Description: body.Description,
			BoxQuantity: body.BoxQuantity,
			Weight:      body.Weight,
			CrateSize:   body.CrateSize,
		}
		if err := database.DB.Create(&part).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "a part with this SKU-color already exists")
		}

		return c.Status(fiber.StatusCreated).JSON(part)
	}
}

// GET /api/parts
func ListPartsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var parts []models.Part
		if err := database.DB.Order("sku_color").Find(&parts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list parts")
		}
		return c.JSON(parts)
	}
}

// GET /api/parts/:id
func GetPartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid part id")
		}

		var part models.Part
		if err := database.DB.First(&part, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "part not found")
		}
		return c.JSON(part)
	}
}

// PUT /api/parts/:id
func UpdatePartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid part id")
		}

		var body UpdatePartRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		var part models.Part
		if err := database.DB.First(&part, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "part not found")
		}

		if body.Description != nil {
			part.Description = *body.Description
		}
		if body.BoxQuantity != nil && *body.BoxQuantity > 0 {
			part.BoxQuantity = *body.BoxQuantity
		}
		if body.Weight != nil {
			part.Weight = *body.Weight
		}
		if body.CrateSize != nil {
			part.CrateSize = *body.CrateSize
		}

		if err := database.DB.Save(&part).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update part")
		}
		return c.JSON(part)
	}
}

// DELETE /api/parts/:id
func DeletePartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid part id")
		}

		res := database.DB.Delete(&models.Part{}, id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete part")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "part not found")
		}
		return c.JSON(fiber.Map{"deleted": id})
	}
}

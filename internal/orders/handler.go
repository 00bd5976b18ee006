package orders

import (
	"strings"
	"time"

	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderLineRequest struct {
	SKUColor string `json:"sku_color"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderNumber string             `json:"order_number"` // generated when empty
	DueDate     string             `json:"due_date"`     // "2026-01-31"
	Parts       []OrderLineRequest `json:"parts"`
}

// POST /api/orders
// Creates the order header and its demand lines in one transaction.
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		due, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "due_date must be 'YYYY-MM-DD'")
		}
		if len(body.Parts) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "at least one part line is required")
		}
		for _, l := range body.Parts {
			if strings.TrimSpace(l.SKUColor) == "" || l.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "every line needs a sku_color and a positive quantity")
			}
		}

		number := strings.TrimSpace(body.OrderNumber)
		if number == "" {
			number = "ORD-" + uuid.NewString()[:8]
		}

		order := models.Order{
			OrderNumber: number,
			Status:      models.OrderNotStarted,
			DueDate:     due,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			lines := make([]models.OrderPart, 0, len(body.Parts))
			for _, l := range body.Parts {
				lines = append(lines, models.OrderPart{
					OrderID:  order.ID,
					SKUColor: strings.TrimSpace(l.SKUColor),
					Quantity: l.Quantity,
				})
			}
			return tx.Create(&lines).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusConflict, "could not create order, is the order number unique?")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"due_date":     order.DueDate.Format("2006-01-02"),
			"lines":        len(body.Parts),
		})
	}
}

// GET /api/orders?status=in_progress
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Preload("Parts").Order("due_date, id")
		if s := c.Query("status"); s != "" {
			q = q.Where("status = ?", s)
		}

		var list []models.Order
		if err := q.Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list orders")
		}
		return c.JSON(list)
	}
}

// GET /api/orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
		}

		var order models.Order
		if err := database.DB.Preload("Parts").First(&order, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return c.JSON(order)
	}
}

// POST /api/orders/:id/ship
// Marks the order completed and stamps end/ship times.
func ShipOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
		}

		var order models.Order
		if err := database.DB.First(&order, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		if order.Status == models.OrderCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "order is already completed")
		}

		now := time.Now()
		order.Status = models.OrderCompleted
		order.EndTime = &now
		order.ShipTime = &now
		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not ship order")
		}

		return c.JSON(fiber.Map{
			"id":        order.ID,
			"status":    order.Status,
			"ship_time": order.ShipTime,
		})
	}
}

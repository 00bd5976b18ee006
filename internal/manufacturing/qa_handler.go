package manufacturing

import (
	"wms-backend/internal/apperr"
	"wms-backend/internal/auth"
	"wms-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type UpdateQARequest struct {
	ManufacturingTaskID uint   `json:"manufacturing_task_id"`
	ProdQA              string `json:"prod_qa"`
	PaintQA             string `json:"paint_qa"`
}

// POST /qa_dashboard/qa_tasks/update/
func UpdateQAHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateQARequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.ManufacturingTaskID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "manufacturing_task_id is required")
		}

		task, err := SubmitQA(database.DB, body.ManufacturingTaskID, body.ProdQA, body.PaintQA)
		if err != nil {
			return apperr.ToHTTP(err, "manufacturing task not found")
		}

		return c.JSON(fiber.Map{
			"detail":   "QA results saved",
			"task_id":  task.ID,
			"prod_qa":  task.ProdQA,
			"paint_qa": task.PaintQA,
			"status":   task.Status,
		})
	}
}

type ReportErrorRequest struct {
	ManufacturingTaskID uint   `json:"manufacturing_task_id"`
	Subject             string `json:"subject"`
	Comment             string `json:"comment"`
}

// POST /qa_dashboard/qa_tasks/report_error/
func ReportErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReportErrorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.ManufacturingTaskID == 0 || body.Subject == "" {
			return fiber.NewError(fiber.StatusBadRequest, "manufacturing_task_id and subject are required")
		}

		reporterID, reporterName, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		report, err := ReportError(database.DB, body.ManufacturingTaskID, body.Subject, body.Comment, reporterID, reporterName)
		if err != nil {
			return apperr.ToHTTP(err, "manufacturing task not found")
		}

		log.Info().Uint("task_id", body.ManufacturingTaskID).Uint("report_id", report.ID).Msg("QA error reported")

		return c.JSON(fiber.Map{
			"detail":    "error report created, task moved to error",
			"report_id": report.ID,
		})
	}
}

type UpdateStatusRequest struct {
	ManufacturingTaskID uint   `json:"manufacturing_task_id"`
	Status              string `json:"status"`
}

// POST /qa_dashboard/qa_tasks/update_status/
func UpdateStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.ManufacturingTaskID == 0 || body.Status == "" {
			return fiber.NewError(fiber.StatusBadRequest, "manufacturing_task_id and status are required")
		}

		task, err := UpdateStatusFromError(database.DB, body.ManufacturingTaskID, body.Status)
		if err != nil {
			return apperr.ToHTTP(err, "could not update task status")
		}

		return c.JSON(fiber.Map{
			"detail":  "task status updated",
			"task_id": task.ID,
			"status":  task.Status,
		})
	}
}

type ResolveErrorRequest struct {
	ErrorID uint `json:"error_id"`
}

// POST /qa_dashboard/qa_tasks/error_reports/resolve/
// Manager-only; the route carries its own RequireRole gate.
func ResolveErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResolveErrorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.ErrorID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "error_id is required")
		}

		if err := ResolveError(database.DB, body.ErrorID); err != nil {
			return apperr.ToHTTP(err, "error report not found")
		}

		return c.JSON(fiber.Map{"detail": "error report resolved"})
	}
}

type SendToPickAndPackRequest struct {
	ManufacturingTaskID uint `json:"manufacturing_task_id"`
	OrderID             uint `json:"order_id"`
}

// POST /qa_dashboard/send_to_pick_and_pack
func SendToPickAndPackHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SendToPickAndPackRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.ManufacturingTaskID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "manufacturing_task_id is required")
		}
		if body.OrderID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "order_id is required")
		}

		picklist, err := SendToPickAndPack(database.DB, body.ManufacturingTaskID, body.OrderID)
		if err != nil {
			return apperr.ToHTTP(err, "could not send task to pick and pack")
		}

		return c.JSON(fiber.Map{
			"message":     "task sent to pick and pack",
			"picklist_id": picklist.ID,
		})
	}
}

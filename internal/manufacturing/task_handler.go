package manufacturing

import (
	"wms-backend/internal/apperr"
	"wms-backend/internal/auth"
	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdvanceTaskRequest struct {
	ManufacturingTaskID uint `json:"manufacturing_task_id"`
}

// POST /api/manufacturing/tasks/advance
// Staff working a stage complete it here; the task moves to the next stage.
func AdvanceTaskHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdvanceTaskRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.ManufacturingTaskID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "manufacturing_task_id is required")
		}

		employeeID, _, _, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		task, err := Advance(database.DB, body.ManufacturingTaskID, employeeID)
		if err != nil {
			return apperr.ToHTTP(err, "could not advance task")
		}

		return c.JSON(fiber.Map{
			"detail":  "task advanced",
			"task_id": task.ID,
			"status":  task.Status,
		})
	}
}

type TaskResponse struct {
	ID              uint              `json:"id"`
	SKUColor        string            `json:"sku_color"`
	Quantity        int               `json:"quantity"`
	DueDate         string            `json:"due_date"`
	Status          models.TaskStatus `json:"status"`
	RequiresWelding bool              `json:"requires_welding"`
	ProdQA          bool              `json:"prod_qa"`
	PaintQA         bool              `json:"paint_qa"`
}

// GET /api/manufacturing/tasks?status=nesting
func ListTasksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("due_date, id")
		if s := c.Query("status"); s != "" {
			q = q.Where("status = ?", s)
		}

		var tasks []models.ManufacturingTask
		if err := q.Find(&tasks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list tasks")
		}

		out := make([]TaskResponse, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, TaskResponse{
				ID:              t.ID,
				SKUColor:        t.SKUColor,
				Quantity:        t.Quantity,
				DueDate:         t.DueDate.Format("2006-01-02"),
				Status:          t.Status,
				RequiresWelding: t.RequiresWelding,
				ProdQA:          t.ProdQA,
				PaintQA:         t.PaintQA,
			})
		}
		return c.JSON(out)
	}
}

// GET /api/manufacturing/tasks/:id/error_reports
func ListErrorReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid task id")
		}

		var task models.ManufacturingTask
		if err := database.DB.First(&task, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "manufacturing task not found")
		}

		var reports []models.QAErrorReport
		if err := database.DB.Where("task_id = ?", task.ID).Order("created_at").Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list error reports")
		}

		return c.JSON(reports)
	}
}

package dashboard

import (
	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/stats
// One aggregate feed for the role dashboards.
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.DB

		type statusCount struct {
			Status string
			Count  int64
		}

		var orderCounts []statusCount
		if err := db.Model(&models.Order{}).
			Select("status, count(*) as count").
			Group("status").
			Scan(&orderCounts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load order stats")
		}

		var taskCounts []statusCount
		if err := db.Model(&models.ManufacturingTask{}).
			Select("status, count(*) as count").
			Group("status").
			Scan(&taskCounts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load task stats")
		}

		var openPicklists int64
		db.Model(&models.InventoryPicklist{}).Where("complete = ?", false).Count(&openPicklists)

		var openErrorReports int64
		db.Model(&models.QAErrorReport{}).Count(&openErrorReports)

		ordersByStatus := fiber.Map{}
		for _, s := range orderCounts {
			ordersByStatus[s.Status] = s.Count
		}
		tasksByStage := fiber.Map{}
		for _, s := range taskCounts {
			tasksByStage[s.Status] = s.Count
		}

		return c.JSON(fiber.Map{
			"orders_by_status":   ordersByStatus,
			"tasks_by_stage":     tasksByStage,
			"open_picklists":     openPicklists,
			"open_error_reports": openErrorReports,
		})
	}
}

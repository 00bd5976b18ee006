package manufacturing

import (
	"testing"
	"time"

	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOverdueOrder(t *testing.T, number string, sku string, qty int, due time.Time) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: number,
		Status:      models.OrderNotStarted,
		DueDate:     due,
	}
	require.NoError(t, database.DB.Create(&order).Error)
	require.NoError(t, database.DB.Create(&models.OrderPart{
		OrderID: order.ID, SKUColor: sku, Quantity: qty,
	}).Error)
	return order
}

func TestOverdueScanAggregatesShortfallAcrossOrders(t *testing.T) {
	setupDB(t)
	require.NoError(t, database.DB.Create(&models.Part{SKUColor: "A-RED", BoxQuantity: 1}).Error)

	yesterday := time.Now().Add(-24 * time.Hour)
	seedOverdueOrder(t, "OD-1", "A-RED", 4, yesterday)
	seedOverdueOrder(t, "OD-2", "A-RED", 6, yesterday.Add(-24*time.Hour))

	n, err := GenerateOverdueTasks(database.DB)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "same-SKU shortfall folds into one task")

	var tasks []models.ManufacturingTask
	require.NoError(t, database.DB.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, "A-RED", tasks[0].SKUColor)
	assert.Equal(t, 10, tasks[0].Quantity, "quantities add up across orders")
	assert.Equal(t, models.StatusNesting, tasks[0].Status)

	// every shortfall item now points at the task
	var unlinked int64
	database.DB.Model(&models.ManufacturingListItem{}).Where("task_id IS NULL").Count(&unlinked)
	assert.EqualValues(t, 0, unlinked)

	// ledger records the claim against the task
	var reservations []models.InventoryReservation
	require.NoError(t, database.DB.Where("task_id IS NOT NULL").Find(&reservations).Error)
	require.Len(t, reservations, 1)
	assert.Equal(t, 10, reservations[0].Quantity)
}

func TestOverdueScanIsStableWithoutNewDemand(t *testing.T) {
	setupDB(t)
	require.NoError(t, database.DB.Create(&models.Part{SKUColor: "A-RED", BoxQuantity: 1}).Error)
	seedOverdueOrder(t, "OD-3", "A-RED", 5, time.Now().Add(-24*time.Hour))

	_, err := GenerateOverdueTasks(database.DB)
	require.NoError(t, err)

	n, err := GenerateOverdueTasks(database.DB)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "already-linked shortfall is not re-counted")

	var task models.ManufacturingTask
	require.NoError(t, database.DB.First(&task).Error)
	assert.Equal(t, 5, task.Quantity)
}

func TestOverdueScanIgnoresFutureAndCompletedOrders(t *testing.T) {
	setupDB(t)
	require.NoError(t, database.DB.Create(&models.Part{SKUColor: "A-RED", BoxQuantity: 1}).Error)

	future := seedOverdueOrder(t, "OD-4", "A-RED", 5, time.Now().Add(24*time.Hour))
	done := seedOverdueOrder(t, "OD-5", "A-RED", 5, time.Now().Add(-24*time.Hour))
	require.NoError(t, database.DB.Model(&done).Update("status", models.OrderCompleted).Error)
	_ = future

	n, err := GenerateOverdueTasks(database.DB)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var count int64
	database.DB.Model(&models.ManufacturingTask{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

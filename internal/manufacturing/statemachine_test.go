package manufacturing

import (
	"testing"
	"time"

	"wms-backend/internal/apperr"
	"wms-backend/internal/database"
	"wms-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.InitTest())
}

func seedTask(t *testing.T, status models.TaskStatus, welding bool) models.ManufacturingTask {
	t.Helper()
	task := models.ManufacturingTask{
		SKUColor:        "A-RED",
		Quantity:        10,
		DueDate:         time.Now().Add(48 * time.Hour),
		Status:          status,
		RequiresWelding: welding,
	}
	require.NoError(t, database.DB.Create(&task).Error)
	return task
}

func TestAdvanceNestingToBending(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusNesting, false)

	out, err := Advance(database.DB, task.ID, 42)
	require.NoError(t, err)

	assert.Equal(t, models.StatusBending, out.Status)
	assert.NotNil(t, out.NestingEnd)
	assert.NotNil(t, out.BendingStart)
	require.NotNil(t, out.NestingEmployee)
	assert.EqualValues(t, 42, *out.NestingEmployee)
}

func TestAdvanceSkipsWeldingWhenNotRequired(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusCutting, false)

	out, err := Advance(database.DB, task.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProductionQA, out.Status)
	assert.Nil(t, out.WeldingStart)
}

func TestAdvanceRoutesThroughWeldingWhenRequired(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusCutting, true)

	out, err := Advance(database.DB, task.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWelding, out.Status)
	assert.NotNil(t, out.WeldingStart)

	out, err = Advance(database.DB, task.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProductionQA, out.Status)
	assert.NotNil(t, out.WeldingEnd)
}

func TestAdvancePastProductionQAConflicts(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusProductionQA, false)

	_, err := Advance(database.DB, task.ID, 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestAdvanceUnknownTask(t *testing.T) {
	setupDB(t)

	_, err := Advance(database.DB, 12345, 7)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSubmitQARoundTrip(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusProductionQA, false)

	out, err := SubmitQA(database.DB, task.ID, "completed", "completed")
	require.NoError(t, err)

	assert.True(t, out.ProdQA)
	assert.True(t, out.PaintQA)
	assert.Equal(t, models.StatusInProgress, out.Status)

	var reloaded models.ManufacturingTask
	require.NoError(t, database.DB.First(&reloaded, task.ID).Error)
	assert.True(t, reloaded.ProdQA)
	assert.True(t, reloaded.PaintQA)
}

// A failed QA submission also lands on in_progress; only ReportError produces
// a distinct failure state. Flagged for confirmation with stakeholders.
func TestSubmitQAPendingStillMovesToInProgress(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusProductionQA, false)

	out, err := SubmitQA(database.DB, task.ID, "pending", "pending")
	require.NoError(t, err)

	assert.False(t, out.ProdQA)
	assert.False(t, out.PaintQA)
	assert.Equal(t, models.StatusInProgress, out.Status)
}

func TestSubmitQAIgnoresUnknownLiterals(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusProductionQA, false)
	require.NoError(t, database.DB.Model(&task).Update("prod_qa", true).Error)

	out, err := SubmitQA(database.DB, task.ID, "banana", "")
	require.NoError(t, err)

	// unrecognized values leave the flags untouched
	assert.True(t, out.ProdQA)
	assert.False(t, out.PaintQA)
	assert.Equal(t, models.StatusInProgress, out.Status)
}

func TestErrorLifecycle(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusBending, false)

	report, err := ReportError(database.DB, task.ID, "bent frame", "frame warped during bending", 9, "QA Person")
	require.NoError(t, err)

	var reloaded models.ManufacturingTask
	require.NoError(t, database.DB.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.StatusError, reloaded.Status)

	var count int64
	database.DB.Model(&models.QAErrorReport{}).Where("task_id = ?", task.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	require.NoError(t, ResolveError(database.DB, report.ID))
	database.DB.Model(&models.QAErrorReport{}).Where("task_id = ?", task.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// resolving does not move the task out of error by itself
	require.NoError(t, database.DB.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.StatusError, reloaded.Status)
}

func TestResolveErrorUnknownReport(t *testing.T) {
	setupDB(t)
	assert.ErrorIs(t, ResolveError(database.DB, 777), apperr.ErrNotFound)
}

func TestUpdateStatusFromErrorOnlyWhenErrored(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusCutting, false)

	_, err := UpdateStatusFromError(database.DB, task.ID, "bending")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	require.NoError(t, database.DB.Model(&task).Update("status", models.StatusError).Error)

	out, err := UpdateStatusFromError(database.DB, task.ID, "bending")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBending, out.Status)
}

func TestSendToPickAndPack(t *testing.T) {
	setupDB(t)
	order := models.Order{
		OrderNumber: "ORD-PP",
		Status:      models.OrderInProgress,
		DueDate:     time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, database.DB.Create(&order).Error)

	task := seedTask(t, models.StatusCutting, false)
	_, err := SendToPickAndPack(database.DB, task.ID, order.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict, "only in_progress tasks can ship to pick and pack")

	require.NoError(t, database.DB.Model(&task).Update("status", models.StatusInProgress).Error)

	picklist, err := SendToPickAndPack(database.DB, task.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, picklist.OrderID)

	var reloaded models.ManufacturingTask
	require.NoError(t, database.DB.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.StatusPickAndPack, reloaded.Status)

	// re-sending reuses the order's existing picklist
	require.NoError(t, database.DB.Model(&task).Update("status", models.StatusInProgress).Error)
	again, err := SendToPickAndPack(database.DB, task.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, picklist.ID, again.ID)
}

func TestSendToPickAndPackUnknownOrder(t *testing.T) {
	setupDB(t)
	task := seedTask(t, models.StatusInProgress, false)

	_, err := SendToPickAndPack(database.DB, task.ID, 999)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

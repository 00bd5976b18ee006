package reconcile

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

func seedPart(t *testing.T, sku string) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Part{SKUColor: sku, BoxQuantity: 1}).Error)
}

func seedInventory(t *testing.T, location, sku string, qty int) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.InventoryRecord{
		Location:       location,
		SKUColor:       sku,
		QuantityOnHand: qty,
	}).Error)
}

func seedOrder(t *testing.T, number string, lines map[string]int) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: number,
		Status:      models.OrderNotStarted,
		DueDate:     time.Now().Add(72 * time.Hour),
	}
	require.NoError(t, database.DB.Create(&order).Error)
	for sku, qty := range lines {
		require.NoError(t, database.DB.Create(&models.OrderPart{
			OrderID: order.ID, SKUColor: sku, Quantity: qty,
		}).Error)
	}
	return order
}

func TestReconcileSplitsShortDemand(t *testing.T) {
	setupDB(t)
	seedPart(t, "A-RED")
	seedInventory(t, "A1", "A-RED", 1)
	seedInventory(t, "B2", "A-RED", 2)
	order := seedOrder(t, "ORD-1", map[string]int{"A-RED": 10})

	res, err := Reconcile(database.DB, order.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, res.PickedQty["A-RED"])
	assert.Equal(t, 7, res.ManufactureQty["A-RED"])
	require.NotNil(t, res.PicklistID)
	require.NotNil(t, res.ManufacturingListID)

	var pickItems []models.InventoryPicklistItem
	require.NoError(t, database.DB.Find(&pickItems).Error)
	require.Len(t, pickItems, 1)
	assert.Equal(t, 3, pickItems[0].Amount)

	var mfgItems []models.ManufacturingListItem
	require.NoError(t, database.DB.Find(&mfgItems).Error)
	require.Len(t, mfgItems, 1)
	assert.Equal(t, 7, mfgItems[0].Amount)

	// every inventory row of the short SKU carries the latest shortfall
	var rows []models.InventoryRecord
	require.NoError(t, database.DB.Where("sku_color = ?", "A-RED").Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 7, r.QuantityReserved)
	}

	var reservations []models.InventoryReservation
	require.NoError(t, database.DB.Find(&reservations).Error)
	require.Len(t, reservations, 1)
	assert.Equal(t, 7, reservations[0].Quantity)
}

func TestReconcileConservation(t *testing.T) {
	setupDB(t)
	seedPart(t, "A-RED")
	seedPart(t, "B-BLUE")
	seedInventory(t, "A1", "A-RED", 20)
	seedInventory(t, "A2", "B-BLUE", 2)
	// same SKU on two lines: demand sums to 6
	order := seedOrder(t, "ORD-2", nil)
	for _, qty := range []int{4, 2} {
		require.NoError(t, database.DB.Create(&models.OrderPart{
			OrderID: order.ID, SKUColor: "A-RED", Quantity: qty,
		}).Error)
	}
	require.NoError(t, database.DB.Create(&models.OrderPart{
		OrderID: order.ID, SKUColor: "B-BLUE", Quantity: 5,
	}).Error)

	res, err := Reconcile(database.DB, order.ID)
	require.NoError(t, err)

	// picked + manufactured == demanded, per SKU
	assert.Equal(t, 6, res.PickedQty["A-RED"]+res.ManufactureQty["A-RED"])
	assert.Equal(t, 5, res.PickedQty["B-BLUE"]+res.ManufactureQty["B-BLUE"])
	assert.Equal(t, 6, res.PickedQty["A-RED"])
	assert.Equal(t, 2, res.PickedQty["B-BLUE"])
	assert.Equal(t, 3, res.ManufactureQty["B-BLUE"])

	// fully satisfied SKU stays unreserved
	var row models.InventoryRecord
	require.NoError(t, database.DB.Where("sku_color = ?", "A-RED").First(&row).Error)
	assert.Equal(t, 0, row.QuantityReserved)
}

func TestReconcileNoInventoryAtAll(t *testing.T) {
	setupDB(t)
	seedPart(t, "B-GREEN")
	order := seedOrder(t, "ORD-3", map[string]int{"B-GREEN": 5})

	res, err := Reconcile(database.DB, order.ID)
	require.NoError(t, err)

	assert.Nil(t, res.PicklistID, "an order with nothing pickable gets no picklist")
	require.NotNil(t, res.ManufacturingListID)
	assert.Equal(t, 5, res.ManufactureQty["B-GREEN"])

	var picklistCount int64
	database.DB.Model(&models.InventoryPicklist{}).Count(&picklistCount)
	assert.EqualValues(t, 0, picklistCount)

	var mfgItems []models.ManufacturingListItem
	require.NoError(t, database.DB.Find(&mfgItems).Error)
	require.Len(t, mfgItems, 1)
	assert.Equal(t, 5, mfgItems[0].Amount)
}

func TestReconcileRerunDoesNotDuplicateLists(t *testing.T) {
	setupDB(t)
	seedPart(t, "A-RED")
	seedInventory(t, "A1", "A-RED", 3)
	order := seedOrder(t, "ORD-4", map[string]int{"A-RED": 10})

	_, err := Reconcile(database.DB, order.ID)
	require.NoError(t, err)
	_, err = Reconcile(database.DB, order.ID)
	require.NoError(t, err)

	var picklistCount, mfgListCount int64
	database.DB.Model(&models.InventoryPicklist{}).Where("order_id = ?", order.ID).Count(&picklistCount)
	database.DB.Model(&models.ManufacturingList{}).Where("order_id = ?", order.ID).Count(&mfgListCount)
	assert.EqualValues(t, 1, picklistCount)
	assert.EqualValues(t, 1, mfgListCount)
}

func TestReconcileUnknownSKUIsPartialFailure(t *testing.T) {
	setupDB(t)
	seedPart(t, "A-RED")
	seedInventory(t, "A1", "A-RED", 10)
	order := seedOrder(t, "ORD-5", map[string]int{"A-RED": 4, "GHOST-1": 2})

	res, err := Reconcile(database.DB, order.ID)
	require.NoError(t, err, "an unknown SKU must not abort the run")

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "GHOST-1")
	assert.Equal(t, 4, res.PickedQty["A-RED"])
	assert.NotContains(t, res.ManufactureQty, "GHOST-1")
}

func TestReconcileEmptyOrder(t *testing.T) {
	setupDB(t)
	order := seedOrder(t, "ORD-6", nil)

	res, err := Reconcile(database.DB, order.ID)
	require.NoError(t, err)
	assert.Empty(t, res.PickedQty)
	assert.Empty(t, res.ManufactureQty)
	assert.Nil(t, res.PicklistID)
}

func TestReconcileOrderNotFound(t *testing.T) {
	setupDB(t)

	_, err := Reconcile(database.DB, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReconcileMarksOrderInProgress(t *testing.T) {
	setupDB(t)
	seedPart(t, "A-RED")
	seedInventory(t, "A1", "A-RED", 5)
	order := seedOrder(t, "ORD-7", map[string]int{"A-RED": 5})

	_, err := Reconcile(database.DB, order.ID)
	require.NoError(t, err)

	var reloaded models.Order
	require.NoError(t, database.DB.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderInProgress, reloaded.Status)
	assert.NotNil(t, reloaded.StartTime)
}

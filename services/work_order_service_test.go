package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_dispatch/models"
	"backend_dispatch/testutils"
)

func setupWorkOrderTest(t *testing.T) (*gorm.DB, *WorkOrderService) {
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)

	orders := NewWorkOrderService(db, NewSequenceService(db), nil)
	testutils.CreateTestProject(db, "P100")
	return db, orders
}

func TestWorkOrderService_CreateAssignsNumberAndStatus(t *testing.T) {
	_, orders := setupWorkOrderTest(t)
	ctx := context.Background()
	start := time.Now()
	end := start.AddDate(0, 0, 14)

	inspection := models.PeriodicInspection{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P100", PlannedStart: start, PlannedEnd: end,
	}}
	require.NoError(t, orders.CreateInspection(ctx, &inspection))
	assert.True(t, strings.HasPrefix(inspection.OrderNumber, "XJ-P100-"))
	assert.Equal(t, models.StatusNotIssued, inspection.Status)

	repair := models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P100", PlannedStart: start, PlannedEnd: end,
	}}
	require.NoError(t, orders.CreateRepair(ctx, &repair))
	assert.True(t, strings.HasPrefix(repair.OrderNumber, "WX-P100-"))
	assert.Equal(t, models.StatusPendingConfirm, repair.Status)

	spot := models.SpotWork{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P100", PlannedStart: start, PlannedEnd: end,
	}}
	require.NoError(t, orders.CreateSpotWork(ctx, &spot))
	assert.True(t, strings.HasPrefix(spot.OrderNumber, "YG-P100-"))
	assert.Equal(t, models.StatusPendingApprove, spot.Status)

	// Номера присвоены из общего счетчика
	_, _, _, seq1, err := ParseOrderNumber(inspection.OrderNumber)
	require.NoError(t, err)
	_, _, _, seq2, err := ParseOrderNumber(repair.OrderNumber)
	require.NoError(t, err)
	_, _, _, seq3, err := ParseOrderNumber(spot.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, seq1+1, seq2)
	assert.Equal(t, seq2+1, seq3)
}

func TestWorkOrderService_CreateValidation(t *testing.T) {
	_, orders := setupWorkOrderTest(t)
	ctx := context.Background()
	start := time.Now()

	var validationErr *ValidationError
	var notFoundErr *NotFoundError

	// Без проекта
	err := orders.CreateRepair(ctx, &models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		PlannedStart: start, PlannedEnd: start.AddDate(0, 0, 1),
	}})
	require.Error(t, err)
	assert.ErrorAs(t, err, &validationErr)

	// Окончание раньше начала
	err = orders.CreateRepair(ctx, &models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P100", PlannedStart: start, PlannedEnd: start.AddDate(0, 0, -1),
	}})
	require.Error(t, err)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "planned_end", validationErr.Field)

	// Статус чужого типа работы
	err = orders.CreateRepair(ctx, &models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P100", PlannedStart: start, PlannedEnd: start.AddDate(0, 0, 1),
		Status: models.StatusNotIssued,
	}})
	require.Error(t, err)
	assert.ErrorAs(t, err, &validationErr)

	// Несуществующий проект
	err = orders.CreateRepair(ctx, &models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P999", PlannedStart: start, PlannedEnd: start.AddDate(0, 0, 1),
	}})
	require.Error(t, err)
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestWorkOrderService_UpdateStatus(t *testing.T) {
	db, orders := setupWorkOrderTest(t)
	ctx := context.Background()
	start := time.Now()

	repair := models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P100", PlannedStart: start, PlannedEnd: start.AddDate(0, 0, 7),
	}}
	require.NoError(t, orders.CreateRepair(ctx, &repair))

	require.NoError(t, orders.UpdateStatus(ctx, models.FamilyTemporaryRepair,
		repair.OrderNumber, models.StatusInProgress, "Ван Фан"))

	got, err := orders.GetRepair(ctx, repair.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, got.Status)

	// Смена статуса фиксируется в журнале операций
	var logCount int64
	require.NoError(t, db.Model(&models.OperationLog{}).
		Where("order_number = ? AND action = ?", repair.OrderNumber, models.ActionStatusChange).
		Count(&logCount).Error)
	assert.Equal(t, int64(1), logCount)

	// Недопустимый для ремонта статус отклоняется
	err = orders.UpdateStatus(ctx, models.FamilyTemporaryRepair,
		repair.OrderNumber, models.StatusApproved, "Ван Фан")
	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Несуществующий номер
	err = orders.UpdateStatus(ctx, models.FamilyTemporaryRepair,
		"WX-P100-20250101-0099", models.StatusInProgress, "Ван Фан")
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestWorkOrderService_SoftDelete(t *testing.T) {
	db, orders := setupWorkOrderTest(t)
	ctx := context.Background()
	start := time.Now()

	repair := models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P100", PlannedStart: start, PlannedEnd: start.AddDate(0, 0, 7),
	}}
	require.NoError(t, orders.CreateRepair(ctx, &repair))

	require.NoError(t, orders.SoftDelete(ctx, models.FamilyTemporaryRepair, repair.OrderNumber, "Ван Фан"))

	// Строка остается в таблице с заполненными полями удаления
	var raw models.TemporaryRepair
	require.NoError(t, db.Where("order_number = ?", repair.OrderNumber).First(&raw).Error)
	assert.True(t, raw.IsDeleted)
	require.NotNil(t, raw.DeletedAt)
	assert.Equal(t, "Ван Фан", raw.DeletedBy)

	// Из чтения и списков запись исчезает
	_, err := orders.GetRepair(ctx, repair.OrderNumber)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	repairs, total, err := orders.ListRepairs(ctx, "P100", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, repairs)

	// Повторное удаление — не найдено
	err = orders.SoftDelete(ctx, models.FamilyTemporaryRepair, repair.OrderNumber, "Ван Фан")
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestWorkOrderService_ListFiltersAndPaginates(t *testing.T) {
	db, orders := setupWorkOrderTest(t)
	testutils.CreateTestProject(db, "P200")
	ctx := context.Background()
	start := time.Now()

	for i := 0; i < 3; i++ {
		require.NoError(t, orders.CreateRepair(ctx, &models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
			ProjectID: "P100", PlannedStart: start, PlannedEnd: start.AddDate(0, 0, i+1),
		}}))
	}
	require.NoError(t, orders.CreateRepair(ctx, &models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID: "P200", PlannedStart: start, PlannedEnd: start.AddDate(0, 0, 1),
	}}))

	repairs, total, err := orders.ListRepairs(ctx, "P100", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, repairs, 2)
	for _, repair := range repairs {
		assert.Equal(t, "P100", repair.ProjectID)
	}

	// Без фильтра по проекту видны все
	_, total, err = orders.ListRepairs(ctx, "", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestWorkOrderService_UnknownFamily(t *testing.T) {
	_, orders := setupWorkOrderTest(t)

	err := orders.UpdateStatus(context.Background(), models.WorkOrderFamily("other"),
		"WX-P100-20250101-0001", models.StatusInProgress, "Ван Фан")
	require.Error(t, err)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend_dispatch/models"
	"backend_dispatch/testutils"
)

func setupSequenceTest(t *testing.T) *SequenceService {
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)
	return NewSequenceService(db)
}

func TestSequenceService_FirstUse(t *testing.T) {
	ss := setupSequenceTest(t)

	// Счетчика еще нет: первый вызов инициализирует его и возвращает
	// первое значение, а не ноль
	val, err := ss.Next(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), val)

	val, err = ss.Next(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), val)
}

func TestSequenceService_StrictlyIncreasing(t *testing.T) {
	ss := setupSequenceTest(t)

	prev := int64(0)
	for i := 0; i < 100; i++ {
		val, err := ss.Next(context.Background())
		require.NoError(t, err)
		assert.Greater(t, val, prev)
		prev = val
	}
}

func TestSequenceService_ConcurrentUniqueness(t *testing.T) {
	ss := setupSequenceTest(t)

	const workers = 1000

	var mu sync.Mutex
	seen := make(map[int64]bool, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			val, err := ss.Next(context.Background())
			if err != nil {
				t.Errorf("ошибка выделения номера: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[val] {
				t.Errorf("номер %d выдан дважды", val)
			}
			seen[val] = true
		}()
	}
	wg.Wait()

	// Ровно N различных значений без пропусков: все вызовы успешны
	assert.Len(t, seen, workers)
	for i := int64(1); i <= workers; i++ {
		assert.True(t, seen[i], "пропущен номер %d", i)
	}
}

func TestSequenceService_Current(t *testing.T) {
	ss := setupSequenceTest(t)

	// До первого выделения счетчик пуст
	val, err := ss.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), val)

	_, err = ss.Next(context.Background())
	require.NoError(t, err)

	val, err = ss.Current(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), val)
}

func TestSequenceService_SharedAcrossFamilies(t *testing.T) {
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)
	testutils.CreateTestProject(db, "P001")

	ss := NewSequenceService(db)
	ws := NewWorkOrderService(db, ss, nil)

	inspection := models.PeriodicInspection{WorkOrderCore: models.WorkOrderCore{
		ProjectID:    "P001",
		PlannedStart: testutils.Date(2025, 3, 1),
		PlannedEnd:   testutils.Date(2025, 3, 10),
	}}
	require.NoError(t, ws.CreateInspection(context.Background(), &inspection))

	repair := models.TemporaryRepair{WorkOrderCore: models.WorkOrderCore{
		ProjectID:    "P001",
		PlannedStart: testutils.Date(2025, 3, 1),
		PlannedEnd:   testutils.Date(2025, 3, 10),
	}}
	require.NoError(t, ws.CreateRepair(context.Background(), &repair))

	// Общий счетчик: номера разных типов не смежны по типу, но не совпадают
	_, _, _, seq1, err := ParseOrderNumber(inspection.OrderNumber)
	require.NoError(t, err)
	_, _, _, seq2, err := ParseOrderNumber(repair.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, seq1+1, seq2)
}

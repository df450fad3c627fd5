package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"backend_dispatch/models"
)

// DefaultAlertHorizonDays — окно "скоро истекает" по умолчанию
const DefaultAlertHorizonDays = 7

// Имена корзин классификации
const (
	BucketExpiring = "expiring"
	BucketOverdue  = "overdue"
)

// AlertOrder — представление работы любого типа для классификации
type AlertOrder struct {
	Family            models.WorkOrderFamily `json:"family"`
	OrderNumber       string                 `json:"order_number"`
	ProjectID         string                 `json:"project_id"`
	PlannedStart      time.Time              `json:"planned_start"`
	PlannedEnd        time.Time              `json:"planned_end"`
	Status            string                 `json:"status"`
	AssignedPersonnel string                 `json:"assigned_personnel"`
}

// AlertBuckets — результат классификации: работа попадает не более чем
// в одну корзину
type AlertBuckets struct {
	Expiring []AlertOrder `json:"expiring"`
	Overdue  []AlertOrder `json:"overdue"`
}

// AlertCounts — счетчики корзин для индикаторов дашборда
type AlertCounts struct {
	Expiring int `json:"expiring"`
	Overdue  int `json:"overdue"`
}

// AlertService классифицирует работы на "скоро истекает" и "просрочено"
// с учетом видимости по роли. Список и счетчики строятся одним и тем же
// путем классификации и потому не расходятся.
type AlertService struct {
	DB    *gorm.DB
	Cache *CacheService
}

// NewAlertService создает новый экземпляр AlertService
func NewAlertService(db *gorm.DB, cache *CacheService) *AlertService {
	return &AlertService{DB: db, Cache: cache}
}

// dateOf приводит момент времени к дате: сравнение плановых сроков
// ведется с точностью до дня, время суток игнорируется
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify раскладывает работы по корзинам. Чистая функция над уже
// отфильтрованным по видимости срезом:
//   - просрочено: plan_end < asOf (строго, по датам);
//   - скоро истекает: asOf <= plan_end <= asOf + horizonDays (включительно);
//   - завершенные и удаленные работы не попадают никуда.
//
// Внутри корзин порядок стабильный: planned_end по возрастанию,
// затем order_number.
func Classify(orders []AlertOrder, asOf time.Time, horizonDays int) AlertBuckets {
	asOfDate := dateOf(asOf)
	horizonDate := asOfDate.AddDate(0, 0, horizonDays)

	var buckets AlertBuckets
	for _, order := range orders {
		if models.IsCompletedStatus(order.Status) {
			continue
		}
		end := dateOf(order.PlannedEnd)
		switch {
		case end.Before(asOfDate):
			buckets.Overdue = append(buckets.Overdue, order)
		case !end.After(horizonDate):
			buckets.Expiring = append(buckets.Expiring, order)
		}
	}

	sortAlertOrders(buckets.Overdue)
	sortAlertOrders(buckets.Expiring)
	return buckets
}

func sortAlertOrders(orders []AlertOrder) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].PlannedEnd.Equal(orders[j].PlannedEnd) {
			return orders[i].PlannedEnd.Before(orders[j].PlannedEnd)
		}
		return orders[i].OrderNumber < orders[j].OrderNumber
	})
}

// fetchVisible собирает незавершенные неудаленные работы всех трех типов,
// видимые данному пользователю. Фильтр видимости применяется в запросе,
// до раскладки по корзинам: не-менеджер не должен узнать даже количество
// чужих просроченных работ.
func (as *AlertService) fetchVisible(ctx context.Context, viewer models.Viewer) ([]AlertOrder, error) {
	var out []AlertOrder

	collect := func(model interface{}, family models.WorkOrderFamily) error {
		query := as.DB.WithContext(ctx).Model(model).
			Where("is_deleted = ?", false).
			Where("status NOT IN ?", models.CompletedStatusList())
		if !viewer.CanSeeAll() {
			query = query.Where("assigned_personnel = ?", viewer.Identity)
		}

		var cores []models.WorkOrderCore
		if err := query.Find(&cores).Error; err != nil {
			return fmt.Errorf("ошибка выборки работ (%s): %w", family, err)
		}
		for _, core := range cores {
			out = append(out, AlertOrder{
				Family:            family,
				OrderNumber:       core.OrderNumber,
				ProjectID:         core.ProjectID,
				PlannedStart:      core.PlannedStart,
				PlannedEnd:        core.PlannedEnd,
				Status:            core.Status,
				AssignedPersonnel: core.AssignedPersonnel,
			})
		}
		return nil
	}

	if err := collect(&models.PeriodicInspection{}, models.FamilyPeriodicInspection); err != nil {
		return nil, err
	}
	if err := collect(&models.TemporaryRepair{}, models.FamilyTemporaryRepair); err != nil {
		return nil, err
	}
	if err := collect(&models.SpotWork{}, models.FamilySpotWork); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassifyAll возвращает обе корзины целиком для данного пользователя
func (as *AlertService) ClassifyAll(ctx context.Context, viewer models.Viewer, asOf time.Time, horizonDays int) (*AlertBuckets, error) {
	orders, err := as.fetchVisible(ctx, viewer)
	if err != nil {
		return nil, err
	}
	buckets := Classify(orders, asOf, horizonDays)
	return &buckets, nil
}

// ListAlerts возвращает страницу одной корзины с общим количеством
func (as *AlertService) ListAlerts(ctx context.Context, viewer models.Viewer, asOf time.Time, horizonDays int, bucket string, page, limit int) ([]AlertOrder, int64, error) {
	buckets, err := as.ClassifyAll(ctx, viewer, asOf, horizonDays)
	if err != nil {
		return nil, 0, err
	}

	var orders []AlertOrder
	switch bucket {
	case BucketExpiring:
		orders = buckets.Expiring
	case BucketOverdue:
		orders = buckets.Overdue
	default:
		return nil, 0, NewValidationError("bucket", "неизвестная корзина: "+bucket)
	}

	total := int64(len(orders))
	start := (page - 1) * limit
	if start >= len(orders) {
		return []AlertOrder{}, total, nil
	}
	end := start + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end], total, nil
}

// CountAlerts возвращает счетчики корзин. Счетчики считаются из той же
// классификации, что и списки; Redis используется только как короткий кэш.
func (as *AlertService) CountAlerts(ctx context.Context, viewer models.Viewer, asOf time.Time, horizonDays int) (AlertCounts, error) {
	if as.Cache != nil {
		if counts, ok := as.Cache.GetAlertCounts(ctx, viewer, asOf, horizonDays); ok {
			return counts, nil
		}
	}

	buckets, err := as.ClassifyAll(ctx, viewer, asOf, horizonDays)
	if err != nil {
		return AlertCounts{}, err
	}
	counts := AlertCounts{
		Expiring: len(buckets.Expiring),
		Overdue:  len(buckets.Overdue),
	}

	if as.Cache != nil {
		if err := as.Cache.SetAlertCounts(ctx, viewer, asOf, horizonDays, counts); err != nil {
			log.Printf("Ошибка кэширования счетчиков: %v", err)
		}
	}
	return counts, nil
}

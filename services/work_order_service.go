package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backend_dispatch/models"
)

// WorkOrderService предоставляет бизнес-логику жизненного цикла работ:
// создание с присвоением номера, смену статуса и мягкое удаление.
type WorkOrderService struct {
	DB       *gorm.DB
	Sequence *SequenceService
	Cache    *CacheService
}

// NewWorkOrderService создает новый экземпляр WorkOrderService
func NewWorkOrderService(db *gorm.DB, sequence *SequenceService, cache *CacheService) *WorkOrderService {
	return &WorkOrderService{DB: db, Sequence: sequence, Cache: cache}
}

// prepareCore валидирует общие поля и присваивает номер работы.
// Номер, выделенный для не сохранившейся в итоге записи, остается
// допустимым пропуском в нумерации.
func (ws *WorkOrderService) prepareCore(ctx context.Context, family models.WorkOrderFamily, core *models.WorkOrderCore) error {
	if core.ProjectID == "" {
		return NewValidationError("project_id", "код проекта обязателен")
	}
	if core.PlannedStart.IsZero() || core.PlannedEnd.IsZero() {
		return NewValidationError("planned_start", "плановые даты обязательны")
	}
	if core.PlannedEnd.Before(core.PlannedStart) {
		return NewValidationError("planned_end", "плановое окончание раньше планового начала")
	}

	if core.Status == "" {
		core.Status = models.InitialStatus(family)
	} else if !models.IsValidStatus(family, core.Status) {
		return NewValidationError("status", "недопустимый статус: "+core.Status)
	}

	// Проверяем существование проекта
	var count int64
	if err := ws.DB.WithContext(ctx).Model(&models.Project{}).
		Where("project_id = ?", core.ProjectID).Count(&count).Error; err != nil {
		return fmt.Errorf("ошибка проверки проекта: %w", err)
	}
	if count == 0 {
		return NewNotFoundError("проект", core.ProjectID)
	}

	seq, err := ws.Sequence.Next(ctx)
	if err != nil {
		return err
	}
	core.OrderNumber = FormatOrderNumber(family.Prefix(), core.ProjectID, time.Now(), seq)
	return nil
}

// CreateInspection создает плановый осмотр
func (ws *WorkOrderService) CreateInspection(ctx context.Context, inspection *models.PeriodicInspection) error {
	if err := ws.prepareCore(ctx, models.FamilyPeriodicInspection, &inspection.WorkOrderCore); err != nil {
		return err
	}
	if err := ws.DB.WithContext(ctx).Create(inspection).Error; err != nil {
		return fmt.Errorf("ошибка создания осмотра: %w", err)
	}
	ws.invalidateAlertCache(ctx)
	return nil
}

// CreateRepair создает временный ремонт
func (ws *WorkOrderService) CreateRepair(ctx context.Context, repair *models.TemporaryRepair) error {
	if err := ws.prepareCore(ctx, models.FamilyTemporaryRepair, &repair.WorkOrderCore); err != nil {
		return err
	}
	if err := ws.DB.WithContext(ctx).Create(repair).Error; err != nil {
		return fmt.Errorf("ошибка создания ремонта: %w", err)
	}
	ws.invalidateAlertCache(ctx)
	return nil
}

// CreateSpotWork создает разовые работы
func (ws *WorkOrderService) CreateSpotWork(ctx context.Context, spot *models.SpotWork) error {
	if err := ws.prepareCore(ctx, models.FamilySpotWork, &spot.WorkOrderCore); err != nil {
		return err
	}
	if err := ws.DB.WithContext(ctx).Create(spot).Error; err != nil {
		return fmt.Errorf("ошибка создания разовых работ: %w", err)
	}
	ws.invalidateAlertCache(ctx)
	return nil
}

// familyModel возвращает пустую модель соответствующего типа работы
func familyModel(family models.WorkOrderFamily) (interface{}, error) {
	switch family {
	case models.FamilyPeriodicInspection:
		return &models.PeriodicInspection{}, nil
	case models.FamilyTemporaryRepair:
		return &models.TemporaryRepair{}, nil
	case models.FamilySpotWork:
		return &models.SpotWork{}, nil
	}
	return nil, NewValidationError("family", "неизвестный тип работы: "+string(family))
}

// UpdateStatus меняет статус работы. Переходы между статусами не ограничены
// графом, но значение обязано входить в набор статусов типа работы.
func (ws *WorkOrderService) UpdateStatus(ctx context.Context, family models.WorkOrderFamily, orderNumber, newStatus, actor string) error {
	if !models.IsValidStatus(family, newStatus) {
		return NewValidationError("status", "недопустимый статус: "+newStatus)
	}

	model, err := familyModel(family)
	if err != nil {
		return err
	}

	res := ws.DB.WithContext(ctx).Model(model).
		Where("order_number = ? AND is_deleted = ?", orderNumber, false).
		Update("status", newStatus)
	if res.Error != nil {
		return fmt.Errorf("ошибка обновления статуса: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return NewNotFoundError("работа", orderNumber)
	}

	logEntry := models.OperationLog{
		TraceID:     uuid.New(),
		Action:      models.ActionStatusChange,
		Actor:       actor,
		Details:     "статус изменен на " + newStatus,
		OrderNumber: orderNumber,
	}
	if err := ws.DB.WithContext(ctx).Create(&logEntry).Error; err != nil {
		log.Printf("Ошибка записи в журнал операций для %s: %v", orderNumber, err)
	}

	ws.invalidateAlertCache(ctx)
	return nil
}

// SoftDelete помечает работу удаленной, не удаляя строку: записи журнала
// операций должны оставаться разрешимыми по номеру работы.
func (ws *WorkOrderService) SoftDelete(ctx context.Context, family models.WorkOrderFamily, orderNumber, actor string) error {
	model, err := familyModel(family)
	if err != nil {
		return err
	}

	now := time.Now()
	res := ws.DB.WithContext(ctx).Model(model).
		Where("order_number = ? AND is_deleted = ?", orderNumber, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": now,
			"deleted_by": actor,
		})
	if res.Error != nil {
		return fmt.Errorf("ошибка удаления работы: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return NewNotFoundError("работа", orderNumber)
	}

	logEntry := models.OperationLog{
		TraceID:     uuid.New(),
		Action:      models.ActionSoftDelete,
		Actor:       actor,
		OrderNumber: orderNumber,
	}
	if err := ws.DB.WithContext(ctx).Create(&logEntry).Error; err != nil {
		log.Printf("Ошибка записи в журнал операций для %s: %v", orderNumber, err)
	}

	ws.invalidateAlertCache(ctx)
	return nil
}

// GetInspection возвращает плановый осмотр по номеру (без удаленных)
func (ws *WorkOrderService) GetInspection(ctx context.Context, orderNumber string) (*models.PeriodicInspection, error) {
	var inspection models.PeriodicInspection
	err := ws.DB.WithContext(ctx).
		Where("order_number = ? AND is_deleted = ?", orderNumber, false).
		First(&inspection).Error
	if err == gorm.ErrRecordNotFound {
		return nil, NewNotFoundError("работа", orderNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения осмотра: %w", err)
	}
	return &inspection, nil
}

// GetRepair возвращает временный ремонт по номеру (без удаленных)
func (ws *WorkOrderService) GetRepair(ctx context.Context, orderNumber string) (*models.TemporaryRepair, error) {
	var repair models.TemporaryRepair
	err := ws.DB.WithContext(ctx).
		Where("order_number = ? AND is_deleted = ?", orderNumber, false).
		First(&repair).Error
	if err == gorm.ErrRecordNotFound {
		return nil, NewNotFoundError("работа", orderNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения ремонта: %w", err)
	}
	return &repair, nil
}

// GetSpotWork возвращает разовые работы по номеру (без удаленных)
func (ws *WorkOrderService) GetSpotWork(ctx context.Context, orderNumber string) (*models.SpotWork, error) {
	var spot models.SpotWork
	err := ws.DB.WithContext(ctx).
		Where("order_number = ? AND is_deleted = ?", orderNumber, false).
		First(&spot).Error
	if err == gorm.ErrRecordNotFound {
		return nil, NewNotFoundError("работа", orderNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения разовых работ: %w", err)
	}
	return &spot, nil
}

// ListInspections возвращает страницу плановых осмотров (без удаленных)
func (ws *WorkOrderService) ListInspections(ctx context.Context, projectID string, page, limit int) ([]models.PeriodicInspection, int64, error) {
	query := ws.DB.WithContext(ctx).Model(&models.PeriodicInspection{}).
		Where("is_deleted = ?", false)
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета осмотров: %w", err)
	}

	var inspections []models.PeriodicInspection
	if err := query.Order("planned_end ASC, order_number ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&inspections).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка получения осмотров: %w", err)
	}
	return inspections, total, nil
}

// ListRepairs возвращает страницу временных ремонтов (без удаленных)
func (ws *WorkOrderService) ListRepairs(ctx context.Context, projectID string, page, limit int) ([]models.TemporaryRepair, int64, error) {
	query := ws.DB.WithContext(ctx).Model(&models.TemporaryRepair{}).
		Where("is_deleted = ?", false)
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета ремонтов: %w", err)
	}

	var repairs []models.TemporaryRepair
	if err := query.Order("planned_end ASC, order_number ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&repairs).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка получения ремонтов: %w", err)
	}
	return repairs, total, nil
}

// ListSpotWorks возвращает страницу разовых работ (без удаленных)
func (ws *WorkOrderService) ListSpotWorks(ctx context.Context, projectID string, page, limit int) ([]models.SpotWork, int64, error) {
	query := ws.DB.WithContext(ctx).Model(&models.SpotWork{}).
		Where("is_deleted = ?", false)
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета разовых работ: %w", err)
	}

	var spots []models.SpotWork
	if err := query.Order("planned_end ASC, order_number ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&spots).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка получения разовых работ: %w", err)
	}
	return spots, total, nil
}

// invalidateAlertCache сбрасывает кэш счетчиков для дашборда после
// любой записи, влияющей на классификацию
func (ws *WorkOrderService) invalidateAlertCache(ctx context.Context) {
	if ws.Cache == nil {
		return
	}
	if err := ws.Cache.InvalidateAlertCounts(ctx); err != nil {
		log.Printf("Ошибка инвалидации кэша счетчиков: %v", err)
	}
}

package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"backend_dispatch/models"
)

// Зависимые от проекта таблицы в порядке удаления (внешние ключи — раньше)
var dependentTables = []struct {
	Name  string
	Model func() interface{}
}{
	{"work_plans", func() interface{} { return &models.WorkPlan{} }},
	{"periodic_inspections", func() interface{} { return &models.PeriodicInspection{} }},
	{"temporary_repairs", func() interface{} { return &models.TemporaryRepair{} }},
	{"spot_works", func() interface{} { return &models.SpotWork{} }},
	{"maintenance_plans", func() interface{} { return &models.MaintenancePlan{} }},
}

// ProjectService управляет проектами и согласованным удалением зависимых
// записей. Каскадное удаление — одна транзакция: либо удаляются проект и
// все зависимые записи пяти таблиц, либо ничего.
type ProjectService struct {
	DB *gorm.DB
}

// NewProjectService создает новый экземпляр ProjectService
func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{DB: db}
}

// CreateProject создает проект
func (ps *ProjectService) CreateProject(ctx context.Context, project *models.Project) error {
	if project.ProjectID == "" {
		return NewValidationError("project_id", "код проекта обязателен")
	}
	if project.Name == "" {
		return NewValidationError("name", "название проекта обязательно")
	}

	var count int64
	if err := ps.DB.WithContext(ctx).Model(&models.Project{}).
		Where("project_id = ?", project.ProjectID).Count(&count).Error; err != nil {
		return fmt.Errorf("ошибка проверки кода проекта: %w", err)
	}
	if count > 0 {
		return NewValidationError("project_id", "код проекта уже используется: "+project.ProjectID)
	}

	if err := ps.DB.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("ошибка создания проекта: %w", err)
	}
	return nil
}

// GetProject возвращает проект по бизнес-ключу
func (ps *ProjectService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	err := ps.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error
	if err == gorm.ErrRecordNotFound {
		return nil, NewNotFoundError("проект", projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения проекта: %w", err)
	}
	return &project, nil
}

// ListProjects возвращает страницу проектов
func (ps *ProjectService) ListProjects(ctx context.Context, page, limit int) ([]models.Project, int64, error) {
	query := ps.DB.WithContext(ctx).Model(&models.Project{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета проектов: %w", err)
	}

	var projects []models.Project
	if err := query.Order("project_id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("ошибка получения проектов: %w", err)
	}
	return projects, total, nil
}

// countDependents подсчитывает зависимые записи по всем пяти таблицам
func (ps *ProjectService) countDependents(db *gorm.DB, projectID string) (map[string]int64, error) {
	counts := make(map[string]int64, len(dependentTables))
	for _, table := range dependentTables {
		var count int64
		if err := db.Model(table.Model()).
			Where("project_id = ?", projectID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("ошибка подсчета записей в %s: %w", table.Name, err)
		}
		counts[table.Name] = count
	}
	return counts, nil
}

// DeleteProject удаляет проект.
//
// При cascade=false наличие хотя бы одной зависимой записи блокирует
// удаление: возвращается ConflictError с перечнем блокирующих таблиц,
// проект остается нетронутым.
//
// При cascade=true зависимые записи всех пяти таблиц удаляются физически
// (вместе со строками, помеченными мягко удаленными), затем удаляется сам
// проект; возвращаются количества удаленных строк по таблицам — нулевые
// включительно.
func (ps *ProjectService) DeleteProject(ctx context.Context, projectID string, cascade bool, actor string) (map[string]int64, error) {
	var project models.Project
	err := ps.DB.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error
	if err == gorm.ErrRecordNotFound {
		return nil, NewNotFoundError("проект", projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения проекта: %w", err)
	}

	counts, err := ps.countDependents(ps.DB.WithContext(ctx), projectID)
	if err != nil {
		return nil, err
	}

	if !cascade {
		blocking := make(map[string]int64)
		for table, count := range counts {
			if count > 0 {
				blocking[table] = count
			}
		}
		if len(blocking) > 0 {
			return nil, NewConflictError(projectID, blocking)
		}
	}

	deleted := make(map[string]int64, len(dependentTables))
	traceID := uuid.New()

	err = ps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range dependentTables {
			res := tx.Where("project_id = ?", projectID).Delete(table.Model())
			if res.Error != nil {
				return fmt.Errorf("ошибка удаления записей из %s: %w", table.Name, res.Error)
			}
			deleted[table.Name] = res.RowsAffected
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("ошибка удаления проекта: %w", err)
		}

		logEntry := models.OperationLog{
			TraceID:   traceID,
			Action:    models.ActionCascadeDelete,
			Actor:     actor,
			ProjectID: projectID,
			Details:   fmt.Sprintf("каскадное удаление проекта, cascade=%t", cascade),
		}
		return tx.Create(&logEntry).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Проект %s удален (trace %s), удалено зависимых записей: %v", projectID, traceID, deleted)
	return deleted, nil
}

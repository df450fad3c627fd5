package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
)

// DatabaseIndex представляет индекс базы данных
type DatabaseIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

// PerformanceIndexes индексы для оптимизации производительности.
// Классификация просроченных/истекающих работ фильтрует по
// is_deleted + status и сортирует по planned_end, фильтр видимости
// идет по assigned_personnel.
var PerformanceIndexes = []DatabaseIndex{
	{Name: "idx_inspections_project_deleted", Table: "periodic_inspections", Columns: []string{"project_id", "is_deleted"}},
	{Name: "idx_inspections_status_end", Table: "periodic_inspections", Columns: []string{"status", "planned_end"}},
	{Name: "idx_inspections_personnel", Table: "periodic_inspections", Columns: []string{"assigned_personnel", "is_deleted"}},

	{Name: "idx_repairs_project_deleted", Table: "temporary_repairs", Columns: []string{"project_id", "is_deleted"}},
	{Name: "idx_repairs_status_end", Table: "temporary_repairs", Columns: []string{"status", "planned_end"}},
	{Name: "idx_repairs_personnel", Table: "temporary_repairs", Columns: []string{"assigned_personnel", "is_deleted"}},

	{Name: "idx_spot_works_project_deleted", Table: "spot_works", Columns: []string{"project_id", "is_deleted"}},
	{Name: "idx_spot_works_status_end", Table: "spot_works", Columns: []string{"status", "planned_end"}},
	{Name: "idx_spot_works_personnel", Table: "spot_works", Columns: []string{"assigned_personnel", "is_deleted"}},

	{Name: "idx_work_plans_project", Table: "work_plans", Columns: []string{"project_id"}},
	{Name: "idx_maintenance_plans_project", Table: "maintenance_plans", Columns: []string{"project_id"}},

	{Name: "idx_operation_logs_order", Table: "operation_logs", Columns: []string{"order_number"}},
	{Name: "idx_operation_logs_project", Table: "operation_logs", Columns: []string{"project_id"}},
}

// CreatePerformanceIndexes создает все индексы производительности
func CreatePerformanceIndexes(db *gorm.DB) error {
	log.Printf("Создание индексов производительности...")

	for _, index := range PerformanceIndexes {
		if err := CreateIndex(db, index); err != nil {
			log.Printf("Не удалось создать индекс %s: %v", index.Name, err)
			// Продолжаем создание других индексов даже если один упал
			continue
		}
	}

	log.Printf("Создание индексов завершено")
	return nil
}

// CreateIndex создает отдельный индекс
func CreateIndex(db *gorm.DB, index DatabaseIndex) error {
	uniqueStr := ""
	if index.Unique {
		uniqueStr = "UNIQUE "
	}

	sql := fmt.Sprintf(
		"CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		uniqueStr, index.Name, index.Table, strings.Join(index.Columns, ", "),
	)
	return db.Exec(sql).Error
}

// DropIndex удаляет индекс
func DropIndex(db *gorm.DB, indexName string) error {
	sql := fmt.Sprintf("DROP INDEX IF EXISTS %s", indexName)
	return db.Exec(sql).Error
}

package models

import (
	"time"
)

// WorkPlan — рабочий план-график по проекту
type WorkPlan struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID string `json:"project_id" gorm:"not null;index;type:varchar(50)"`

	Title     string    `json:"title" gorm:"not null;type:varchar(200)"`
	PlanStart time.Time `json:"plan_start"`
	PlanEnd   time.Time `json:"plan_end"`
	Content   string    `json:"content" gorm:"type:text"`
}

// TableName задает имя таблицы для модели WorkPlan
func (WorkPlan) TableName() string {
	return "work_plans"
}

// MaintenancePlan — план технического обслуживания по проекту
type MaintenancePlan struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID string `json:"project_id" gorm:"not null;index;type:varchar(50)"`

	Title string `json:"title" gorm:"not null;type:varchar(200)"`
	Year  int    `json:"year"`
	Notes string `json:"notes" gorm:"type:text"`
}

// TableName задает имя таблицы для модели MaintenancePlan
func (MaintenancePlan) TableName() string {
	return "maintenance_plans"
}

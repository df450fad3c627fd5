package models

import (
	"time"
)

// Project представляет объект обслуживания (проект), к которому привязываются
// работы всех трех типов, а также план-графики
type Project struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Внешний бизнес-ключ проекта, используется в номерах работ
	ProjectID string `json:"project_id" gorm:"uniqueIndex;not null;type:varchar(50)"`

	// Основные поля
	Name    string `json:"name" gorm:"not null;type:varchar(200)"`
	Address string `json:"address" gorm:"type:text"`

	// Заказчик
	CustomerName  string `json:"customer_name" gorm:"type:varchar(100)"`
	CustomerPhone string `json:"customer_phone" gorm:"type:varchar(20)"`

	// Ответственный менеджер проекта
	ManagerName string `json:"manager_name" gorm:"type:varchar(50)"`

	IsActive bool `json:"is_active" gorm:"default:true"`
}

// TableName задает имя таблицы для модели Project
func (Project) TableName() string {
	return "projects"
}

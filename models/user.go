package models

import (
	"time"

	"gorm.io/gorm"
)

// Роли пользователей. Роли управленческого уровня видят все работы,
// остальные — только назначенные на себя.
const (
	RoleAdmin             = "admin"
	RoleDepartmentManager = "department_manager"
	RoleSupervisor        = "supervisor"
	RoleWorker            = "worker"
)

// User представляет учетную запись сотрудника
type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// Основные поля
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"` // Пароль не возвращается в JSON

	// Имя, под которым сотрудник указывается как исполнитель работ
	// (сопоставляется с assigned_personnel)
	Name string `json:"name" gorm:"not null;type:varchar(50)"`

	Phone    string `json:"phone" gorm:"type:varchar(20)"`
	Role     string `json:"role" gorm:"default:'worker';type:varchar(30)"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// TableName задает имя таблицы для модели User
func (User) TableName() string {
	return "users"
}

// IsManagerRole сообщает, относится ли роль к управленческому уровню
func IsManagerRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDepartmentManager, RoleSupervisor:
		return true
	}
	return false
}

// Viewer — минимальное представление пользователя для фильтрации видимости работ
type Viewer struct {
	Identity string `json:"identity"` // имя исполнителя для сопоставления
	Role     string `json:"role"`
}

// CanSeeAll сообщает, видит ли пользователь работы всех исполнителей
func (v Viewer) CanSeeAll() bool {
	return IsManagerRole(v.Role)
}

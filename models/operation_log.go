package models

import (
	"time"

	"github.com/google/uuid"
)

// Действия, фиксируемые в журнале операций
const (
	ActionSoftDelete    = "soft_delete"
	ActionCascadeDelete = "cascade_delete"
	ActionStatusChange  = "status_change"
)

// OperationLog — журнал операций над работами и проектами.
// Работы удаляются мягко именно для того, чтобы записи журнала
// оставались разрешимыми по order_number.
type OperationLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`

	// Идентификатор пакета операций: все удаления одного каскада
	// получают общий trace_id
	TraceID uuid.UUID `json:"trace_id" gorm:"type:uuid;not null;index"`

	Action  string `json:"action" gorm:"not null;type:varchar(30)"`
	Actor   string `json:"actor" gorm:"type:varchar(50)"`
	Details string `json:"details" gorm:"type:text"`

	// Ссылки на затронутые записи (опционально)
	OrderNumber string `json:"order_number" gorm:"index;type:varchar(60)"`
	ProjectID   string `json:"project_id" gorm:"index;type:varchar(50)"`
}

// TableName задает имя таблицы для модели OperationLog
func (OperationLog) TableName() string {
	return "operation_logs"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderFamily определяет тип работы (плановый осмотр, временный ремонт,
// разовые работы). Каждому типу соответствует свой префикс номера и своя таблица.
type WorkOrderFamily string

const (
	FamilyPeriodicInspection WorkOrderFamily = "periodic_inspection"
	FamilyTemporaryRepair    WorkOrderFamily = "temporary_repair"
	FamilySpotWork           WorkOrderFamily = "spot_work"
)

// Префиксы номеров работ. Формат номера — внешний контракт:
// <PREFIX>-<PROJECT_ID>-<YYYYMMDD>-<SEQ:04d>
const (
	PrefixPeriodicInspection = "XJ"
	PrefixTemporaryRepair    = "WX"
	PrefixSpotWork           = "YG"
)

// Prefix возвращает префикс номера для типа работы
func (f WorkOrderFamily) Prefix() string {
	switch f {
	case FamilyPeriodicInspection:
		return PrefixPeriodicInspection
	case FamilyTemporaryRepair:
		return PrefixTemporaryRepair
	case FamilySpotWork:
		return PrefixSpotWork
	}
	return ""
}

// WorkOrderCore содержит общие поля всех трех типов работ.
// Мягкое удаление хранится явными полями (is_deleted/deleted_at/deleted_by),
// чтобы журнал операций мог ссылаться на удаленные записи.
type WorkOrderCore struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Номер работы, неизменяемый после присвоения
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null;type:varchar(60)"`

	// Бизнес-ключ проекта (слабая ссылка, без каскада на уровне ORM)
	ProjectID string `json:"project_id" gorm:"not null;index;type:varchar(50)"`

	// Плановое окно выполнения; planned_end >= planned_start
	PlannedStart time.Time `json:"planned_start" gorm:"not null"`
	PlannedEnd   time.Time `json:"planned_end" gorm:"not null;index"`

	// Статус из допустимого набора соответствующего типа работы
	Status string `json:"status" gorm:"not null;type:varchar(20)"`

	// Исполнитель (свободный текст, не строгий внешний ключ)
	AssignedPersonnel string `json:"assigned_personnel" gorm:"index;type:varchar(50)"`

	Description string `json:"description" gorm:"type:text"`

	// Маркеры мягкого удаления
	IsDeleted bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy string     `json:"deleted_by" gorm:"type:varchar(50)"`
}

// PeriodicInspection — плановый (периодический) осмотр
type PeriodicInspection struct {
	WorkOrderCore

	// Периодичность осмотра в днях
	CycleDays int `json:"cycle_days" gorm:"default:0"`

	// Пункты проверки
	Checklist string `json:"checklist" gorm:"type:text"`
}

// TableName задает имя таблицы для модели PeriodicInspection
func (PeriodicInspection) TableName() string {
	return "periodic_inspections"
}

// TemporaryRepair — временный (внеплановый) ремонт
type TemporaryRepair struct {
	WorkOrderCore

	// Описание неисправности
	FaultDescription string `json:"fault_description" gorm:"type:text"`

	// Оценочная стоимость ремонта
	EstimatedCost decimal.Decimal `json:"estimated_cost" gorm:"type:decimal(12,2);default:0"`
}

// TableName задает имя таблицы для модели TemporaryRepair
func (TemporaryRepair) TableName() string {
	return "temporary_repairs"
}

// SpotWork — разовые работы с почасовой оплатой
type SpotWork struct {
	WorkOrderCore

	// Количество привлекаемых рабочих
	Headcount int `json:"headcount" gorm:"default:1"`

	// Стоимость работ
	LaborCost decimal.Decimal `json:"labor_cost" gorm:"type:decimal(12,2);default:0"`
}

// TableName задает имя таблицы для модели SpotWork
func (SpotWork) TableName() string {
	return "spot_works"
}

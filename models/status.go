package models

// Наборы статусов по типам работ. Значения статусов — внешний контракт,
// потребляются интерфейсом без перевода.
//
// Разделение "открыт/завершен" вынесено в явную таблицу completedStatuses,
// а не размазано строковыми сравнениями по вызывающему коду.

// Статусы работ
const (
	StatusPendingConfirm = "待确认" // ожидает подтверждения
	StatusNotIssued      = "未下发" // не выдан исполнителю
	StatusNotStarted     = "未进行" // не начат
	StatusPendingApprove = "待审批" // ожидает согласования
	StatusReturned       = "已退回" // возвращен на доработку
	StatusPendingExec    = "待执行" // ожидает выполнения
	StatusConfirmed      = "已确认" // подтвержден
	StatusInProgress     = "执行中" // выполняется
	StatusCompleted      = "已完成" // завершен
	StatusApproved       = "已审批" // согласован
)

// validStatuses — допустимые статусы по типам работ, в порядке обычного
// прохождения (порядок справочный, переходы не ограничены графом)
var validStatuses = map[WorkOrderFamily][]string{
	FamilyPeriodicInspection: {
		StatusNotIssued,
		StatusPendingExec,
		StatusInProgress,
		StatusCompleted,
	},
	FamilyTemporaryRepair: {
		StatusPendingConfirm,
		StatusConfirmed,
		StatusNotStarted,
		StatusInProgress,
		StatusCompleted,
	},
	FamilySpotWork: {
		StatusPendingApprove,
		StatusReturned,
		StatusNotStarted,
		StatusInProgress,
		StatusApproved,
		StatusCompleted,
	},
}

// initialStatuses — начальный статус новой работы по типам
var initialStatuses = map[WorkOrderFamily]string{
	FamilyPeriodicInspection: StatusNotIssued,
	FamilyTemporaryRepair:    StatusPendingConfirm,
	FamilySpotWork:           StatusPendingApprove,
}

// completedStatuses — статусы, считающиеся завершенными для классификации
// просроченных/истекающих работ. Статус 已确认 допустим для ремонта как
// обычный статус, но для классификации считается завершенным.
var completedStatuses = map[string]bool{
	StatusCompleted: true,
	StatusConfirmed: true,
	StatusApproved:  true,
}

// ValidStatuses возвращает упорядоченный набор допустимых статусов типа работы
func ValidStatuses(family WorkOrderFamily) []string {
	statuses := validStatuses[family]
	out := make([]string, len(statuses))
	copy(out, statuses)
	return out
}

// IsValidStatus проверяет, допустим ли статус для данного типа работы
func IsValidStatus(family WorkOrderFamily, status string) bool {
	for _, s := range validStatuses[family] {
		if s == status {
			return true
		}
	}
	return false
}

// InitialStatus возвращает начальный статус для нового наряда данного типа
func InitialStatus(family WorkOrderFamily) string {
	return initialStatuses[family]
}

// IsCompletedStatus сообщает, считается ли статус завершенным.
// Завершенные работы не попадают в просроченные и истекающие.
func IsCompletedStatus(status string) bool {
	return completedStatuses[status]
}

// CompletedStatusList возвращает перечень завершенных статусов для SQL-фильтров
func CompletedStatusList() []string {
	return []string{StatusCompleted, StatusConfirmed, StatusApproved}
}

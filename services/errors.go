package services

import (
	"fmt"
	"sort"
	"strings"
)

// Типизированные ошибки доменного слоя. Обработчики API транслируют их
// в HTTP-коды через errors.As.

// ValidationError — некорректные входные данные (недопустимый статус,
// плановое окончание раньше планового начала и т.п.)
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("ошибка валидации поля %s: %s", e.Field, e.Message)
	}
	return "ошибка валидации: " + e.Message
}

// NewValidationError создает ошибку валидации
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError — обращение к несуществующему проекту или работе
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s не найден: %s", e.Entity, e.Key)
}

// NewNotFoundError создает ошибку "не найдено"
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// ConflictError — удаление проекта без каскада заблокировано зависимыми
// записями. Blocking содержит только таблицы с ненулевым количеством строк.
type ConflictError struct {
	ProjectID string
	Blocking  map[string]int64
}

func (e *ConflictError) Error() string {
	tables := make([]string, 0, len(e.Blocking))
	for table := range e.Blocking {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("%s (%d)", table, e.Blocking[table]))
	}
	return fmt.Sprintf("удаление проекта %s заблокировано зависимыми записями: %s",
		e.ProjectID, strings.Join(parts, ", "))
}

// NewConflictError создает ошибку конфликта удаления
func NewConflictError(projectID string, blocking map[string]int64) *ConflictError {
	return &ConflictError{ProjectID: projectID, Blocking: blocking}
}

// AllocationError — счетчик номеров недоступен или не инициализируется.
// Фатальна для запроса создания: фиктивный номер не возвращается никогда.
type AllocationError struct {
	Err error
}

func (e *AllocationError) Error() string {
	return "не удалось выделить порядковый номер: " + e.Err.Error()
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"backend_dispatch/models"
)

// SequenceService выдает строго возрастающие порядковые номера из единого
// долговечного счетчика. Инкремент выполняется одним атомарным UPDATE на
// стороне БД: чтение-изменение-запись на уровне приложения теряет обновления
// при конкурентных вызовах.
type SequenceService struct {
	DB *gorm.DB
}

// NewSequenceService создает новый экземпляр SequenceService
func NewSequenceService(db *gorm.DB) *SequenceService {
	return &SequenceService{DB: db}
}

// allocAttempts — попытки выделения номера с учетом гонки первичной
// инициализации счетчика
const allocAttempts = 3

// Next выделяет следующий порядковый номер. Значение никогда не повторяется
// даже при конкурентных вызовах; невыделенный после ошибки номер остается
// допустимым пропуском в нумерации.
func (ss *SequenceService) Next(ctx context.Context) (int64, error) {
	var lastErr error
	for attempt := 0; attempt < allocAttempts; attempt++ {
		var val int64
		res := ss.DB.WithContext(ctx).
			Raw("UPDATE order_sequences SET current_val = current_val + 1 WHERE id = ? RETURNING current_val",
				models.OrderSequenceID).
			Scan(&val)
		if res.Error != nil {
			lastErr = res.Error
			continue
		}
		if res.RowsAffected > 0 && val > 0 {
			return val, nil
		}

		// Строки счетчика еще нет: инициализируем ровно один раз.
		// Проигравший гонку вставки просто повторяет UPDATE.
		if err := ss.ensureCounter(ctx); err != nil {
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("счетчик не инициализирован после %d попыток", allocAttempts)
	}
	return 0, &AllocationError{Err: lastErr}
}

// ensureCounter создает строку счетчика, если она еще не существует
func (ss *SequenceService) ensureCounter(ctx context.Context) error {
	seq := models.OrderSequence{ID: models.OrderSequenceID, CurrentVal: 0}
	if err := ss.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seq).Error; err != nil {
		return fmt.Errorf("ошибка инициализации счетчика: %w", err)
	}
	return nil
}

// Current возвращает последний выданный номер (0, если счетчик пуст).
// Только для диагностики, не для выделения номеров.
func (ss *SequenceService) Current(ctx context.Context) (int64, error) {
	var seq models.OrderSequence
	err := ss.DB.WithContext(ctx).First(&seq, models.OrderSequenceID).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("ошибка чтения счетчика: %w", err)
	}
	return seq.CurrentVal, nil
}

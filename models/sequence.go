package models

// OrderSequence — единый долговечный счетчик для нумерации работ.
// Один общий счетчик на все три типа работ: номера, выданные в один день
// для одного проекта разным типам, не обязаны быть смежными, но никогда
// не совпадают.
type OrderSequence struct {
	ID         uint  `json:"id" gorm:"primarykey"`
	CurrentVal int64 `json:"current_val" gorm:"not null;default:0"`
}

// OrderSequenceID — идентификатор единственной строки счетчика
const OrderSequenceID uint = 1

// TableName задает имя таблицы для модели OrderSequence
func (OrderSequence) TableName() string {
	return "order_sequences"
}

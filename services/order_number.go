package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Формат номера работы: <PREFIX>-<PROJECT_ID>-<YYYYMMDD>-<SEQ:04d>.
// Номер — пользовательский идентификатор и поверхность совместимости,
// формат менять нельзя.

const orderDateLayout = "20060102"

// FormatOrderNumber собирает канонический номер работы. Порядковый номер
// дополняется нулями до четырех знаков; значения свыше 9999 расширяют
// сегмент без ошибки — уникальность обеспечивает счетчик, а не ширина поля.
func FormatOrderNumber(prefix, projectID string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%s-%04d", prefix, projectID, date.Format(orderDateLayout), seq)
}

// ParseOrderNumber разбирает номер работы на составные части.
// Код проекта может содержать дефисы, поэтому дата и порядковый номер
// отделяются по двум последним дефисам.
func ParseOrderNumber(orderNumber string) (prefix, projectID string, date time.Time, seq int64, err error) {
	seqIdx := strings.LastIndex(orderNumber, "-")
	if seqIdx < 0 {
		return "", "", time.Time{}, 0, fmt.Errorf("некорректный номер работы: %s", orderNumber)
	}
	dateIdx := strings.LastIndex(orderNumber[:seqIdx], "-")
	prefixIdx := strings.Index(orderNumber, "-")
	if dateIdx < 0 || prefixIdx < 0 || prefixIdx >= dateIdx {
		return "", "", time.Time{}, 0, fmt.Errorf("некорректный номер работы: %s", orderNumber)
	}

	prefix = orderNumber[:prefixIdx]
	projectID = orderNumber[prefixIdx+1 : dateIdx]
	if prefix == "" || projectID == "" {
		return "", "", time.Time{}, 0, fmt.Errorf("некорректный номер работы: %s", orderNumber)
	}

	date, err = time.Parse(orderDateLayout, orderNumber[dateIdx+1:seqIdx])
	if err != nil {
		return "", "", time.Time{}, 0, fmt.Errorf("некорректная дата в номере работы %s: %w", orderNumber, err)
	}

	seq, err = strconv.ParseInt(orderNumber[seqIdx+1:], 10, 64)
	if err != nil {
		return "", "", time.Time{}, 0, fmt.Errorf("некорректный порядковый номер в %s: %w", orderNumber, err)
	}

	return prefix, projectID, date, seq, nil
}

package services

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// NotificationService отправляет сводки по истекающим и просроченным
// работам. При ненастроенном Telegram сводка только логируется.
type NotificationService struct {
	Telegram *TelegramClient
}

// NewNotificationService создает новый экземпляр NotificationService
func NewNotificationService(telegram *TelegramClient) *NotificationService {
	return &NotificationService{Telegram: telegram}
}

// SendAlertDigest отправляет сводку по корзинам классификации
func (ns *NotificationService) SendAlertDigest(asOf time.Time, buckets *AlertBuckets) error {
	if len(buckets.Overdue) == 0 && len(buckets.Expiring) == 0 {
		return nil
	}

	message := ns.buildDigest(asOf, buckets)

	if ns.Telegram == nil {
		log.Printf("Telegram не настроен, сводка:\n%s", message)
		return nil
	}
	return ns.Telegram.SendMessage(message)
}

// buildDigest формирует текст сводки
func (ns *NotificationService) buildDigest(asOf time.Time, buckets *AlertBuckets) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>Сводка по работам на %s</b>\n", asOf.Format("02.01.2006"))
	fmt.Fprintf(&b, "Просрочено: %d, истекает в ближайшие дни: %d\n",
		len(buckets.Overdue), len(buckets.Expiring))

	if len(buckets.Overdue) > 0 {
		b.WriteString("\n<b>Просроченные работы:</b>\n")
		for _, order := range buckets.Overdue {
			fmt.Fprintf(&b, "• %s (%s, до %s, %s)\n",
				order.OrderNumber, order.ProjectID,
				order.PlannedEnd.Format("02.01.2006"), order.Status)
		}
	}

	if len(buckets.Expiring) > 0 {
		b.WriteString("\n<b>Истекающие работы:</b>\n")
		for _, order := range buckets.Expiring {
			fmt.Fprintf(&b, "• %s (%s, до %s, %s)\n",
				order.OrderNumber, order.ProjectID,
				order.PlannedEnd.Format("02.01.2006"), order.Status)
		}
	}

	return b.String()
}

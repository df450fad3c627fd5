package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"backend_dispatch/models"
)

// AlertSchedulerService ежедневно классифицирует работы и рассылает сводку.
// Ошибки рассылки логируются и не прерывают работу сервиса.
type AlertSchedulerService struct {
	alerts        *AlertService
	notifications *NotificationService
	cron          *cron.Cron
	horizonDays   int
	spec          string
}

// NewAlertSchedulerService создает новый экземпляр AlertSchedulerService.
// spec — cron-выражение с секундами, например "0 0 8 * * *" (каждый день в 8:00).
func NewAlertSchedulerService(alerts *AlertService, notifications *NotificationService, horizonDays int, spec string) *AlertSchedulerService {
	c := cron.New(cron.WithSeconds())
	return &AlertSchedulerService{
		alerts:        alerts,
		notifications: notifications,
		cron:          c,
		horizonDays:   horizonDays,
		spec:          spec,
	}
}

// Start запускает планировщик сводок
func (ass *AlertSchedulerService) Start() error {
	if _, err := ass.cron.AddFunc(ass.spec, ass.RunOnce); err != nil {
		return fmt.Errorf("некорректное cron-выражение %q: %w", ass.spec, err)
	}
	ass.cron.Start()
	log.Println("Планировщик сводок по работам запущен")
	return nil
}

// Stop останавливает планировщик сводок
func (ass *AlertSchedulerService) Stop() {
	ass.cron.Stop()
	log.Println("Планировщик сводок по работам остановлен")
}

// RunOnce выполняет одну итерацию: классификация от имени управленческой
// роли (полная видимость) и рассылка сводки
func (ass *AlertSchedulerService) RunOnce() {
	ctx := context.Background()
	viewer := models.Viewer{Role: models.RoleAdmin}

	buckets, err := ass.alerts.ClassifyAll(ctx, viewer, time.Now(), ass.horizonDays)
	if err != nil {
		log.Printf("Ошибка классификации работ для сводки: %v", err)
		return
	}

	if err := ass.notifications.SendAlertDigest(time.Now(), buckets); err != nil {
		log.Printf("Ошибка отправки сводки: %v", err)
	}
}

package testutils

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend_dispatch/models"
)

// SetupTestDB создает тестовую базу данных SQLite в памяти со всеми
// моделями. Пул ограничен одним соединением: во-первых, каждая сессия
// ":memory:" видит свою БД, во-вторых, конкурентные записи
// сериализуются, как в тестах выделения номеров.
func SetupTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.PeriodicInspection{},
		&models.TemporaryRepair{},
		&models.SpotWork{},
		&models.WorkPlan{},
		&models.MaintenancePlan{},
		&models.OrderSequence{},
		&models.OperationLog{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// CreateTestProject создает проект для тестов
func CreateTestProject(db *gorm.DB, projectID string) *models.Project {
	project := &models.Project{
		ProjectID:    projectID,
		Name:         "Тестовый проект " + projectID,
		CustomerName: "Тестовый заказчик",
		IsActive:     true,
	}
	db.Create(project)
	return project
}

// CreateTestUser создает учетную запись сотрудника для тестов
func CreateTestUser(db *gorm.DB, username, name, role string) *models.User {
	user := &models.User{
		Username: username,
		Password: "hashed-password",
		Name:     name,
		Role:     role,
		IsActive: true,
	}
	db.Create(user)
	return user
}

// Date возвращает дату без времени суток для плановых сроков в тестах
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

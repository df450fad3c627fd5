package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend_dispatch/api"
	"backend_dispatch/config"
	"backend_dispatch/database"
	"backend_dispatch/middleware"
	"backend_dispatch/services"
)

// initDB инициализирует подключение к базе данных
func initDB() {
	log.Println("🔧 Инициализация базы данных...")

	// Создаем базу данных, если она не существует
	if err := database.CreateDatabaseIfNotExists(); err != nil {
		log.Fatal("❌ Ошибка при создании базы данных:", err)
	}

	// Подключаемся к базе данных
	if err := database.ConnectDatabase(); err != nil {
		log.Fatal("❌ Ошибка подключения к базе данных:", err)
	}

	// Индексы производительности
	if err := database.CreatePerformanceIndexes(database.GetDB()); err != nil {
		log.Printf("⚠️  Ошибка создания индексов: %v", err)
	}

	log.Println("✅ База данных успешно инициализирована")
}

func main() {
	// Загружаем конфигурацию (включая .env файл)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Ошибка загрузки конфигурации:", err)
	}
	cfg.LogConfig()

	// Инициализируем базу данных
	initDB()
	db := database.GetDB()

	// Redis не обязателен: без него кэш счетчиков и rate limiting отключаются
	if err := database.InitRedis(); err != nil {
		log.Printf("⚠️  Redis недоступен, кэширование отключено: %v", err)
	}

	// Сервисный слой
	cache := services.NewCacheService(database.GetRedis(), log.Default())
	sequence := services.NewSequenceService(db)
	orders := services.NewWorkOrderService(db, sequence, cache)
	projects := services.NewProjectService(db)
	alerts := services.NewAlertService(db, cache)
	reports := services.NewReportService()

	// Telegram необязателен: без него сводки только логируются
	var telegram *services.TelegramClient
	if tc, err := services.NewTelegramClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID); err != nil {
		log.Printf("⚠️  Telegram не настроен: %v", err)
	} else {
		telegram = tc
	}
	notifications := services.NewNotificationService(telegram)

	// Планировщик ежедневных сводок
	scheduler := services.NewAlertSchedulerService(alerts, notifications, cfg.Alerts.HorizonDays, cfg.Alerts.DigestCron)
	if err := scheduler.Start(); err != nil {
		log.Printf("⚠️  Планировщик сводок не запущен: %v", err)
	}
	defer scheduler.Stop()

	// Настраиваем Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	}))

	auth := middleware.NewAuthMiddleware(db)
	projectsAPI := api.NewProjectsAPI(projects, reports)
	ordersAPI := api.NewWorkOrdersAPI(orders)
	dashboardAPI := api.NewDashboardAPI(alerts, reports, cfg.Alerts.HorizonDays)

	// Базовые роуты
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":   "success",
			"message":  "pong",
			"database": "connected",
		})
	})

	// Публичные роуты
	r.POST("/api/auth/login", middleware.AuthRateLimit(), api.Login(db))

	// Защищенные роуты
	authorized := r.Group("/api", auth.RequireAuth())
	{
		authorized.POST("/users", auth.RequireManager(), api.CreateUser(db))

		authorized.POST("/projects", projectsAPI.CreateProject)
		authorized.GET("/projects", projectsAPI.GetProjects)
		authorized.GET("/projects/:project_id", projectsAPI.GetProject)
		authorized.DELETE("/projects/:project_id", auth.RequireManager(), projectsAPI.DeleteProject)

		authorized.POST("/inspections", ordersAPI.CreateInspection)
		authorized.POST("/repairs", ordersAPI.CreateRepair)
		authorized.POST("/spot-works", ordersAPI.CreateSpotWork)

		authorized.GET("/orders/:family", ordersAPI.ListWorkOrders)
		authorized.GET("/orders/:family/:order_number", ordersAPI.GetWorkOrder)
		authorized.PUT("/orders/:family/:order_number/status", ordersAPI.UpdateWorkOrderStatus)
		authorized.DELETE("/orders/:family/:order_number", ordersAPI.DeleteWorkOrder)

		authorized.GET("/dashboard/alerts", dashboardAPI.GetAlerts)
		authorized.GET("/dashboard/alerts/count", dashboardAPI.GetAlertCounts)
		authorized.GET("/dashboard/alerts/export", dashboardAPI.ExportAlertsExcel)
	}

	log.Printf("🚀 Сервер запущен на порту %s", cfg.App.Port)
	if err := r.Run(cfg.App.Host + ":" + cfg.App.Port); err != nil {
		log.Fatal("❌ Ошибка запуска сервера:", err)
	}
}

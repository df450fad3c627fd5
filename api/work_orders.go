package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"backend_dispatch/models"
	"backend_dispatch/services"
)

// WorkOrdersAPI — обработчики маршрутов работ всех трех типов
type WorkOrdersAPI struct {
	Orders *services.WorkOrderService
}

// NewWorkOrdersAPI создает новый экземпляр WorkOrdersAPI
func NewWorkOrdersAPI(orders *services.WorkOrderService) *WorkOrdersAPI {
	return &WorkOrdersAPI{Orders: orders}
}

// CreateWorkOrderRequest — общие поля запроса создания работы
type CreateWorkOrderRequest struct {
	ProjectID         string    `json:"project_id" binding:"required"`
	PlannedStart      time.Time `json:"planned_start" binding:"required"`
	PlannedEnd        time.Time `json:"planned_end" binding:"required"`
	Status            string    `json:"status"`
	AssignedPersonnel string    `json:"assigned_personnel"`
	Description       string    `json:"description"`

	// Поля планового осмотра
	CycleDays int    `json:"cycle_days"`
	Checklist string `json:"checklist"`

	// Поля временного ремонта
	FaultDescription string          `json:"fault_description"`
	EstimatedCost    decimal.Decimal `json:"estimated_cost"`

	// Поля разовых работ
	Headcount int             `json:"headcount"`
	LaborCost decimal.Decimal `json:"labor_cost"`
}

func (req *CreateWorkOrderRequest) core() models.WorkOrderCore {
	return models.WorkOrderCore{
		ProjectID:         req.ProjectID,
		PlannedStart:      req.PlannedStart,
		PlannedEnd:        req.PlannedEnd,
		Status:            req.Status,
		AssignedPersonnel: req.AssignedPersonnel,
		Description:       req.Description,
	}
}

// CreateInspection создает плановый осмотр
func (wa *WorkOrdersAPI) CreateInspection(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	inspection := models.PeriodicInspection{
		WorkOrderCore: req.core(),
		CycleDays:     req.CycleDays,
		Checklist:     req.Checklist,
	}
	if err := wa.Orders.CreateInspection(c.Request.Context(), &inspection); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": inspection})
}

// CreateRepair создает временный ремонт
func (wa *WorkOrdersAPI) CreateRepair(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	repair := models.TemporaryRepair{
		WorkOrderCore:    req.core(),
		FaultDescription: req.FaultDescription,
		EstimatedCost:    req.EstimatedCost,
	}
	if err := wa.Orders.CreateRepair(c.Request.Context(), &repair); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": repair})
}

// CreateSpotWork создает разовые работы
func (wa *WorkOrdersAPI) CreateSpotWork(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	spot := models.SpotWork{
		WorkOrderCore: req.core(),
		Headcount:     req.Headcount,
		LaborCost:     req.LaborCost,
	}
	if err := wa.Orders.CreateSpotWork(c.Request.Context(), &spot); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": spot})
}

// familyFromParam сопоставляет сегмент пути с типом работы
func familyFromParam(param string) (models.WorkOrderFamily, bool) {
	switch param {
	case "inspections":
		return models.FamilyPeriodicInspection, true
	case "repairs":
		return models.FamilyTemporaryRepair, true
	case "spot-works":
		return models.FamilySpotWork, true
	}
	return "", false
}

// GetWorkOrder возвращает работу по номеру
func (wa *WorkOrdersAPI) GetWorkOrder(c *gin.Context) {
	family, ok := familyFromParam(c.Param("family"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Неизвестный тип работы: " + c.Param("family")})
		return
	}

	var data interface{}
	var err error
	switch family {
	case models.FamilyPeriodicInspection:
		data, err = wa.Orders.GetInspection(c.Request.Context(), c.Param("order_number"))
	case models.FamilyTemporaryRepair:
		data, err = wa.Orders.GetRepair(c.Request.Context(), c.Param("order_number"))
	case models.FamilySpotWork:
		data, err = wa.Orders.GetSpotWork(c.Request.Context(), c.Param("order_number"))
	}
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

// ListWorkOrders возвращает страницу работ одного типа
func (wa *WorkOrdersAPI) ListWorkOrders(c *gin.Context) {
	family, ok := familyFromParam(c.Param("family"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Неизвестный тип работы: " + c.Param("family")})
		return
	}

	page, limit := GetPagination(c)
	projectID := c.Query("project_id")

	var items interface{}
	var total int64
	var err error
	switch family {
	case models.FamilyPeriodicInspection:
		items, total, err = wa.Orders.ListInspections(c.Request.Context(), projectID, page, limit)
	case models.FamilyTemporaryRepair:
		items, total, err = wa.Orders.ListRepairs(c.Request.Context(), projectID, page, limit)
	case models.FamilySpotWork:
		items, total, err = wa.Orders.ListSpotWorks(c.Request.Context(), projectID, page, limit)
	}
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse(items, total, page, limit))
}

// UpdateStatusRequest — запрос смены статуса
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateWorkOrderStatus меняет статус работы
func (wa *WorkOrdersAPI) UpdateWorkOrderStatus(c *gin.Context) {
	family, ok := familyFromParam(c.Param("family"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Неизвестный тип работы: " + c.Param("family")})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	err := wa.Orders.UpdateStatus(c.Request.Context(), family, c.Param("order_number"), req.Status, GetActorName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteWorkOrder мягко удаляет работу
func (wa *WorkOrdersAPI) DeleteWorkOrder(c *gin.Context) {
	family, ok := familyFromParam(c.Param("family"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Неизвестный тип работы: " + c.Param("family")})
		return
	}

	err := wa.Orders.SoftDelete(c.Request.Context(), family, c.Param("order_number"), GetActorName(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"backend_dispatch/services"
)

// DashboardAPI — обработчики дашборда: списки и счетчики истекающих и
// просроченных работ
type DashboardAPI struct {
	Alerts      *services.AlertService
	Reports     *services.ReportService
	HorizonDays int
}

// NewDashboardAPI создает новый экземпляр DashboardAPI
func NewDashboardAPI(alerts *services.AlertService, reports *services.ReportService, horizonDays int) *DashboardAPI {
	return &DashboardAPI{Alerts: alerts, Reports: reports, HorizonDays: horizonDays}
}

// horizon читает окно классификации из запроса, по умолчанию — настройка сервиса
func (da *DashboardAPI) horizon(c *gin.Context) int {
	if raw := c.Query("horizon_days"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days >= 0 {
			return days
		}
	}
	return da.HorizonDays
}

// GetAlerts возвращает страницу одной корзины (?bucket=expiring|overdue)
func (da *DashboardAPI) GetAlerts(c *gin.Context) {
	page, limit := GetPagination(c)
	bucket := c.DefaultQuery("bucket", services.BucketExpiring)

	items, total, err := da.Alerts.ListAlerts(c.Request.Context(), GetViewer(c),
		time.Now(), da.horizon(c), bucket, page, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse(items, total, page, limit))
}

// GetAlertCounts возвращает счетчики корзин для индикаторов
func (da *DashboardAPI) GetAlertCounts(c *gin.Context) {
	counts, err := da.Alerts.CountAlerts(c.Request.Context(), GetViewer(c), time.Now(), da.horizon(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": counts})
}

// ExportAlertsExcel выгружает обе корзины в Excel файл
func (da *DashboardAPI) ExportAlertsExcel(c *gin.Context) {
	buckets, err := da.Alerts.ClassifyAll(c.Request.Context(), GetViewer(c), time.Now(), da.horizon(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	filePath := filepath.Join(os.TempDir(),
		"alerts_"+time.Now().Format("20060102_150405")+".xlsx")
	if err := da.Reports.ExportAlertsExcel(buckets, filePath); err != nil {
		RespondError(c, err)
		return
	}
	defer os.Remove(filePath)

	c.FileAttachment(filePath, filepath.Base(filePath))
}

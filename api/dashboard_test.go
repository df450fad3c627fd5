package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_dispatch/models"
	"backend_dispatch/services"
	"backend_dispatch/testutils"
)

// setupDashboardRouter поднимает роутер с тестовой подменой аутентификации:
// пользователь кладется в контекст напрямую, без JWT
func setupDashboardRouter(t *testing.T, viewer models.Viewer) (*gin.Engine, *gorm.DB, *services.WorkOrderService) {
	gin.SetMode(gin.TestMode)

	db, err := testutils.SetupTestDB()
	require.NoError(t, err)

	orders := services.NewWorkOrderService(db, services.NewSequenceService(db), nil)
	alerts := services.NewAlertService(db, nil)
	dashboard := NewDashboardAPI(alerts, services.NewReportService(), services.DefaultAlertHorizonDays)
	projects := NewProjectsAPI(services.NewProjectService(db), services.NewReportService())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("viewer", viewer)
		c.Set("user", &models.User{Name: viewer.Identity, Role: viewer.Role})
		c.Next()
	})
	router.GET("/api/dashboard/alerts", dashboard.GetAlerts)
	router.GET("/api/dashboard/alerts/count", dashboard.GetAlertCounts)
	router.DELETE("/api/projects/:project_id", projects.DeleteProject)

	return router, db, orders
}

func seedOverdueRepair(t *testing.T, db *gorm.DB, orders *services.WorkOrderService, personnel string) {
	t.Helper()
	testutils.CreateTestProject(db, "P100")
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, orders.CreateRepair(context.Background(), &models.TemporaryRepair{
		WorkOrderCore: models.WorkOrderCore{
			ProjectID:         "P100",
			PlannedStart:      yesterday.AddDate(0, 0, -7),
			PlannedEnd:        yesterday,
			Status:            models.StatusInProgress,
			AssignedPersonnel: personnel,
		},
	}))
}

func TestDashboardAPI_GetAlerts(t *testing.T) {
	manager := models.Viewer{Identity: "Ван Фан", Role: models.RoleAdmin}
	router, db, orders := setupDashboardRouter(t, manager)
	seedOverdueRepair(t, db, orders, "Ли На")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/alerts?bucket=overdue", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Items []services.AlertOrder `json:"items"`
			Total int64                 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "P100", resp.Data.Items[0].ProjectID)
}

func TestDashboardAPI_GetAlertCounts_VisibilityScoped(t *testing.T) {
	// Чужая работа не видна не-менеджеру даже в счетчиках
	worker := models.Viewer{Identity: "Чжан Вэй", Role: models.RoleWorker}
	router, db, orders := setupDashboardRouter(t, worker)
	seedOverdueRepair(t, db, orders, "Ли На")

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/alerts/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string               `json:"status"`
		Data   services.AlertCounts `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.Overdue)
	assert.Equal(t, 0, resp.Data.Expiring)
}

func TestDashboardAPI_GetAlerts_UnknownBucket(t *testing.T) {
	manager := models.Viewer{Identity: "Ван Фан", Role: models.RoleAdmin}
	router, _, _ := setupDashboardRouter(t, manager)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/alerts?bucket=stale", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectsAPI_DeleteConflict(t *testing.T) {
	manager := models.Viewer{Identity: "Ван Фан", Role: models.RoleAdmin}
	router, db, orders := setupDashboardRouter(t, manager)
	seedOverdueRepair(t, db, orders, "Ли На")

	// Без каскада — 409 с перечнем блокирующих таблиц
	req := httptest.NewRequest(http.MethodDelete, "/api/projects/P100", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var conflictResp struct {
		Status   string           `json:"status"`
		Blocking map[string]int64 `json:"blocking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflictResp))
	assert.Equal(t, "error", conflictResp.Status)
	assert.Equal(t, map[string]int64{"temporary_repairs": 1}, conflictResp.Blocking)

	// С каскадом — 200 и количества по таблицам
	req = httptest.NewRequest(http.MethodDelete, "/api/projects/P100?cascade=true", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var deleteResp struct {
		Status string `json:"status"`
		Data   struct {
			DeletedCounts map[string]int64 `json:"deleted_counts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleteResp))
	assert.Equal(t, "success", deleteResp.Status)
	assert.Equal(t, int64(1), deleteResp.Data.DeletedCounts["temporary_repairs"])
	assert.Equal(t, int64(0), deleteResp.Data.DeletedCounts["spot_works"])
}

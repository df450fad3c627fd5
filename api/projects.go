package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend_dispatch/models"
	"backend_dispatch/services"
)

// ProjectsAPI — обработчики маршрутов проектов
type ProjectsAPI struct {
	Projects *services.ProjectService
	Reports  *services.ReportService
}

// NewProjectsAPI создает новый экземпляр ProjectsAPI
func NewProjectsAPI(projects *services.ProjectService, reports *services.ReportService) *ProjectsAPI {
	return &ProjectsAPI{Projects: projects, Reports: reports}
}

// CreateProject создает новый проект
func (pa *ProjectsAPI) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
		return
	}

	if err := pa.Projects.CreateProject(c.Request.Context(), &project); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": project})
}

// GetProjects возвращает список проектов с пагинацией
func (pa *ProjectsAPI) GetProjects(c *gin.Context) {
	page, limit := GetPagination(c)

	projects, total, err := pa.Projects.ListProjects(c.Request.Context(), page, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse(projects, total, page, limit))
}

// GetProject возвращает проект по бизнес-ключу
func (pa *ProjectsAPI) GetProject(c *gin.Context) {
	project, err := pa.Projects.GetProject(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": project})
}

// DeleteProject удаляет проект. При cascade=true зависимые записи пяти
// таблиц удаляются в одной транзакции, иначе наличие зависимостей
// блокирует удаление с кодом 409. При report=true вместо JSON возвращается
// PDF со сводкой удаленных записей.
func (pa *ProjectsAPI) DeleteProject(c *gin.Context) {
	projectID := c.Param("project_id")
	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))
	withReport, _ := strconv.ParseBool(c.DefaultQuery("report", "false"))

	deleted, err := pa.Projects.DeleteProject(c.Request.Context(), projectID, cascade, GetActorName(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	if withReport {
		filePath := filepath.Join(os.TempDir(), "project_deletion_"+projectID+".pdf")
		if err := pa.Reports.ExportProjectDeletionPDF(projectID, deleted, filePath); err != nil {
			RespondError(c, err)
			return
		}
		defer os.Remove(filePath)
		c.FileAttachment(filePath, filepath.Base(filePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"deleted_counts": deleted,
		},
	})
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend_dispatch/models"
	"backend_dispatch/services"
)

// GetViewer извлекает пользователя из контекста Gin для фильтрации видимости
func GetViewer(c *gin.Context) models.Viewer {
	if viewer, exists := c.Get("viewer"); exists {
		if v, ok := viewer.(models.Viewer); ok {
			return v
		}
	}
	return models.Viewer{}
}

// GetActorName возвращает имя текущего пользователя для журнала операций
func GetActorName(c *gin.Context) string {
	if user, exists := c.Get("user"); exists {
		if u, ok := user.(*models.User); ok {
			return u.Name
		}
	}
	return ""
}

// GetPagination читает параметры пагинации из запроса
func GetPagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return page, limit
}

// RespondError транслирует доменную ошибку в HTTP-ответ
func RespondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var conflictErr *services.ConflictError
	var allocErr *services.AllocationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"status":   "error",
			"error":    conflictErr.Error(),
			"blocking": conflictErr.Blocking,
		})
	case errors.As(err, &allocErr):
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": allocErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": err.Error()})
	}
}

// ListResponse формирует стандартный ответ списка с пагинацией
func ListResponse(items interface{}, total int64, page, limit int) gin.H {
	return gin.H{
		"status": "success",
		"data": gin.H{
			"items":       items,
			"total":       total,
			"page":        page,
			"limit":       limit,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	}
}

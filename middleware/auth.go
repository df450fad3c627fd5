package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"backend_dispatch/config"
	"backend_dispatch/models"
)

// AuthMiddleware проверяет JWT и помещает пользователя в контекст запроса
type AuthMiddleware struct {
	DB *gorm.DB
}

// NewAuthMiddleware создает новый экземпляр AuthMiddleware
func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{DB: db}
}

// Claims — полезная нагрузка токена
type Claims struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth middleware для проверки аутентификации
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Получаем токен из заголовка
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Authorization header is required",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Invalid authorization format",
			})
			c.Abort()
			return
		}

		claims, err := am.parseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Invalid or expired token: " + err.Error(),
			})
			c.Abort()
			return
		}

		// Проверяем, что учетная запись существует и активна
		var user models.User
		if err := am.DB.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"error":  "Учетная запись не найдена или деактивирована",
			})
			c.Abort()
			return
		}

		// Сохраняем информацию о пользователе в контексте
		c.Set("user", &user)
		c.Set("viewer", models.Viewer{Identity: user.Name, Role: user.Role})

		c.Next()
	}
}

// parseToken проверяет подпись и срок действия токена
func (am *AuthMiddleware) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return []byte(config.GetConfig().JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("токен недействителен")
	}
	return claims, nil
}

// RequireManager пропускает только роли управленческого уровня
func (am *AuthMiddleware) RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, exists := c.Get("viewer")
		if !exists || !viewer.(models.Viewer).CanSeeAll() {
			c.JSON(http.StatusForbidden, gin.H{
				"status": "error",
				"error":  "Недостаточно прав",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

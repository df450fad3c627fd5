package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"backend_dispatch/config"
	"backend_dispatch/middleware"
	"backend_dispatch/models"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=3,max=64"`
}

// Login проверяет учетные данные и выдает JWT
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Неверный логин или пароль"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "error": "Неверный логин или пароль"})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "error": "Учетная запись деактивирована"})
			return
		}

		cfg := config.GetConfig()
		now := time.Now()
		claims := middleware.Claims{
			UserID: user.ID,
			Name:   user.Name,
			Role:   user.Role,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    cfg.JWT.Issuer,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWT.ExpiresIn)),
			},
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWT.Secret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Ошибка выпуска токена: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"token": signed,
				"user": gin.H{
					"id":   user.ID,
					"name": user.Name,
					"role": user.Role,
				},
			},
		})
	}
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Name     string `json:"name" binding:"required,max=50"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// CreateUser регистрирует учетную запись сотрудника
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "error": "Некорректные данные: " + err.Error()})
			return
		}

		role := req.Role
		if role == "" {
			role = models.RoleWorker
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Ошибка хэширования пароля"})
			return
		}

		user := models.User{
			Username: req.Username,
			Password: string(hashedPassword),
			Name:     req.Name,
			Phone:    req.Phone,
			Role:     role,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "error": "Ошибка создания пользователя: " + err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"status": "success", "data": user})
	}
}

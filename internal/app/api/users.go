package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LLLgoyour/StarScope/internal/app/middleware"
	"github.com/LLLgoyour/StarScope/internal/app/models"
	"github.com/LLLgoyour/StarScope/internal/app/repository"
)

var userRepo *repository.Repository

const sessionTTL = 24 * time.Hour

func InitUserAPI(r *repository.Repository, g *gin.RouterGroup) {
	userRepo = r
	registerUserRoutes(g)
}

func registerUserRoutes(g *gin.RouterGroup) {
	users := g.Group("/users")
	{
		users.POST("/register", registerUser)
		users.POST("/login", loginUser)
		users.POST("/logout", middleware.AuthMiddleware(), logoutUser)
		users.GET("/me", middleware.AuthMiddleware(), getCurrentUser)
		users.PUT("/me", middleware.AuthMiddleware(), updateCurrentUser)
	}
}

func registerUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Нужны username и password"})
		return
	}

	if _, err := userRepo.GetUserByUsername(req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Имя пользователя занято"})
		return
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// права модератора выдаются только вручную
	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := userRepo.CreateUser(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user created", "user_id": user.UserID})
}

func loginUser(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	user, err := userRepo.GetUserByUsername(req.Username)
	if err != nil || !repository.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token := uuid.NewString()
	if err := userRepo.Redis.SetSession(c.Request.Context(), token, user.UserID, sessionTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка создания сессии"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"user_id":      user.UserID,
		"is_moderator": user.IsModerator,
	})
}

func logoutUser(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if err := userRepo.Redis.DeleteSession(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка удаления сессии"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func getCurrentUser(c *gin.Context) {
	uid := c.GetInt("user_id")

	user, err := userRepo.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":      user.UserID,
		"username":     user.Username,
		"is_moderator": user.IsModerator,
	})
}

func updateCurrentUser(c *gin.Context) {
	uid := c.GetInt("user_id")

	var req map[string]interface{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	delete(req, "user_id")
	delete(req, "is_moderator")
	delete(req, "password_hash")

	if pw, ok := req["password"]; ok {
		s, _ := pw.(string)
		if s == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Пустой пароль"})
			return
		}
		hash, err := repository.HashPassword(s)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		req["password_hash"] = hash
		delete(req, "password")
	}

	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Нет полей для обновления"})
		return
	}

	if err := userRepo.DB.Model(&models.User{}).Where("user_id = ?", uid).Updates(req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

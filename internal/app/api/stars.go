package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LLLgoyour/StarScope/internal/app/middleware"
	"github.com/LLLgoyour/StarScope/internal/app/models"
	"github.com/LLLgoyour/StarScope/internal/app/repository"
)

func InitStarAPI(r *repository.Repository, g *gin.RouterGroup) {
	repo = r
	registerStarRoutes(g)
}

func registerStarRoutes(g *gin.RouterGroup) {
	stars := g.Group("/stars")
	{
		stars.GET("", getStars)
		stars.GET("/:id", getStarByID)

		// каталог меняет только модератор
		moderator := stars.Group("", middleware.AuthMiddleware(), middleware.RequireModerator())
		moderator.POST("", createStar)
		moderator.PUT("/:id", updateStar)
		moderator.DELETE("/:id", deleteStar)
	}
}

// Каталог большой, поэтому список всегда ограничен: по умолчанию
// звёзды до 6-й величины, не больше 500 строк.
func getStars(c *gin.Context) {
	query := repo.DB.Model(&models.Star{}).Where("is_active = ?", true)

	if q := c.Query("q"); q != "" {
		query = query.Where("name ILIKE ?", "%"+q+"%")
	}

	maxMag := 6.0
	if s := c.Query("max_mag"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный max_mag"})
			return
		}
		maxMag = v
	}
	query = query.Where("magnitude <= ?", maxMag)

	limit := 500
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный limit"})
			return
		}
		limit = v
	}

	var stars []models.Star
	if err := query.Order("magnitude").Limit(limit).Find(&stars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения звёзд: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, stars)
}

func getStarByID(c *gin.Context) {
	hip, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный номер HIP"})
		return
	}

	star, err := repo.GetStarByID(hip)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Звезда не найдена"})
		return
	}
	c.JSON(http.StatusOK, star)
}

func validStar(s *models.Star) string {
	if s.HIP <= 0 {
		return "Номер HIP обязателен"
	}
	if s.RADeg < 0 || s.RADeg >= 360 {
		return "Прямое восхождение должно быть в [0, 360)"
	}
	if s.DecDeg < -90 || s.DecDeg > 90 {
		return "Склонение должно быть в [-90, 90]"
	}
	return ""
}

func createStar(c *gin.Context) {
	var input models.Star

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный JSON: " + err.Error()})
		return
	}

	if msg := validStar(&input); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	input.IsActive = true

	if err := repo.CreateStar(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения в БД: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Звезда добавлена в каталог",
		"star":    input,
	})
}

func updateStar(c *gin.Context) {
	hip, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный номер HIP"})
		return
	}

	existing, err := repo.GetStarByID(hip)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Звезда не найдена"})
		return
	}

	var input models.Star
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный JSON: " + err.Error()})
		return
	}

	// Обновляем поля, HIP остаётся прежним
	existing.Name = input.Name
	existing.RADeg = input.RADeg
	existing.DecDeg = input.DecDeg
	existing.Magnitude = input.Magnitude
	existing.IsActive = input.IsActive

	if msg := validStar(existing); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := repo.UpdateStar(existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Звезда обновлена",
		"star":    existing,
	})
}

func deleteStar(c *gin.Context) {
	hip, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный номер HIP"})
		return
	}

	affected, err := repo.DeleteStar(hip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении звезды"})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Звезда не найдена"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Звезда скрыта из каталога"})
}

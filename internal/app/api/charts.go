package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LLLgoyour/StarScope/internal/app/chart"
	"github.com/LLLgoyour/StarScope/internal/app/geocoder"
	"github.com/LLLgoyour/StarScope/internal/app/middleware"
	"github.com/LLLgoyour/StarScope/internal/app/models"
	"github.com/LLLgoyour/StarScope/internal/app/repository"
	"github.com/LLLgoyour/StarScope/internal/app/resolver"
	"github.com/LLLgoyour/StarScope/internal/app/storage"
)

var repo *repository.Repository
var chartService *chart.Service
var store *storage.Storage

func InitChartAPI(r *repository.Repository, charts *chart.Service, s *storage.Storage, g *gin.RouterGroup) {
	repo = r
	chartService = charts
	store = s
	registerChartRoutes(g)
}

func registerChartRoutes(g *gin.RouterGroup) {
	charts := g.Group("/charts")
	{
		charts.GET("", getAllCharts)
		charts.GET("/:id", getChartByID)
		charts.POST("", createChart)
		charts.DELETE("/:id", middleware.AuthMiddleware(), middleware.RequireModerator(), deleteChart)

		charts.GET("/:id/image", getChartImage)
		charts.GET("/:id/tooltip", getChartTooltip)
	}
}

// apiError — статус и сообщение по виду ошибки конвейера построения
func apiError(err error) (int, string) {
	switch {
	case errors.Is(err, geocoder.ErrLocationNotFound):
		return http.StatusNotFound, "Место не найдено"
	case errors.Is(err, resolver.ErrTimeParse):
		return http.StatusBadRequest, "Неверный формат даты и времени, ожидается ГГГГ-ММ-ДД ЧЧ:ММ"
	case errors.Is(err, resolver.ErrTimezoneUnresolved):
		return http.StatusUnprocessableEntity, "Не удалось определить часовой пояс места"
	default:
		return http.StatusInternalServerError, "Ошибка построения карты"
	}
}

func getAllCharts(c *gin.Context) {
	var charts []models.Chart

	location := c.Query("location")
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	query := repo.DB.Model(&models.Chart{})

	// фильтры
	if location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if startDate != "" && endDate != "" {
		// ожидается формат YYYY-MM-DD
		query = query.Where("observed_at BETWEEN ? AND ?", startDate, endDate)
	}

	if err := query.Order("created_at DESC").Find(&charts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения списка карт: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, charts)
}

func getChartByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID"})
		return
	}

	chartModel, err := repo.GetChart(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Карта не найдена"})
		return
	}

	c.JSON(http.StatusOK, chartModel)
}

func createChart(c *gin.Context) {
	var req models.ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный JSON: " + err.Error()})
		return
	}

	newChart, png, err := chartService.Generate(c.Request.Context(), req)
	if err != nil {
		status, message := apiError(err)
		logrus.Warn("Не удалось построить карту: ", err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	newChart.ObjectKey = fmt.Sprintf("chart_%s.png", uuid.NewString())
	if err := store.SaveChart(c.Request.Context(), newChart.ObjectKey, png); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка загрузки в MinIO: " + err.Error()})
		return
	}
	newChart.CreatedAt = time.Now()

	if err := repo.CreateChart(newChart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка сохранения в БД: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Карта построена",
		"chart":   newChart,
	})
}

func deleteChart(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID"})
		return
	}

	chartModel, err := repo.GetChart(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Карта не найдена"})
		return
	}

	if err := store.DeleteChart(c.Request.Context(), chartModel.ObjectKey); err != nil {
		logrus.Warn("Не удалось удалить PNG из MinIO: ", err)
	}

	if err := repo.DeleteChart(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении карты"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Карта удалена", "chartID": id})
}

func getChartImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID"})
		return
	}

	chartModel, err := repo.GetChart(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Карта не найдена"})
		return
	}

	data, err := store.LoadChart(c.Request.Context(), chartModel.ObjectKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения из MinIO: " + err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

// @Summary Подсказка по звезде под курсором
// @Description Возвращает звезду, чей маркер накрывает точку (x, y) холста
// @Tags Charts
// @Produce json
// @Param id path int true "ID карты"
// @Param x query number true "X в пикселях холста"
// @Param y query number true "Y в пикселях холста"
// @Success 200 {object} map[string]interface{}
// @Success 204 "Под курсором пусто"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /charts/{id}/tooltip [get]
func getChartTooltip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID"})
		return
	}

	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Нужны числовые параметры x и y"})
		return
	}

	chartModel, err := repo.GetChart(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Карта не найдена"})
		return
	}

	marker := chart.MarkerAt(chartModel.Markers, x, y)
	if marker == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hip":       marker.HIP,
		"label":     marker.Label(),
		"magnitude": marker.Magnitude,
		"x":         marker.X,
		"y":         marker.Y,
	})
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LLLgoyour/StarScope/internal/app/geocoder"
	"github.com/LLLgoyour/StarScope/internal/app/models"
	"github.com/LLLgoyour/StarScope/internal/app/resolver"
)

// Главная страница: форма запроса карты
func (h *Handler) ChartPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "pageChart.html", gin.H{
		"location": "",
		"when":     "2023-01-01 00:00",
		"grid":     false,
	})
}

// Построение карты по данным формы
func (h *Handler) GenerateChart(ctx *gin.Context) {
	req := models.ChartRequest{
		Location: ctx.PostForm("location"),
		When:     ctx.PostForm("when"),
		Grid:     ctx.PostForm("grid") != "",
	}

	newChart, png, err := h.Charts.Generate(ctx.Request.Context(), req)
	if err != nil {
		status, message := webError(err)
		logrus.Warn("Не удалось построить карту: ", err)
		ctx.HTML(status, "pageChart.html", gin.H{
			"error":    message,
			"location": req.Location,
			"when":     req.When,
			"grid":     req.Grid,
		})
		return
	}

	// PNG уходит в MinIO, в БД остаются метаданные и маркеры
	newChart.ObjectKey = fmt.Sprintf("chart_%s.png", uuid.NewString())
	if err := h.Storage.SaveChart(ctx.Request.Context(), newChart.ObjectKey, png); err != nil {
		logrus.Error("Ошибка сохранения PNG в MinIO: ", err)
		ctx.String(http.StatusInternalServerError, "Ошибка сохранения карты")
		return
	}
	newChart.CreatedAt = time.Now()

	if err := h.Repository.CreateChart(newChart); err != nil {
		logrus.Error("Ошибка сохранения карты в БД: ", err)
		ctx.String(http.StatusInternalServerError, "Ошибка сохранения карты")
		return
	}

	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/charts/%d", newChart.ChartID))
}

// Страница построенной карты
func (h *Handler) GetChart(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.String(http.StatusBadRequest, "Неверный ID карты")
		return
	}

	chartModel, err := h.Repository.GetChart(id)
	if err != nil {
		logrus.Error("Ошибка получения карты: ", err)
		ctx.String(http.StatusNotFound, "Карта не найдена")
		return
	}

	ctx.HTML(http.StatusOK, "pageChart.html", gin.H{
		"chart":      chartModel,
		"observedAt": formatObserved(chartModel),
		"location":   chartModel.Location,
		"when":       localWhen(chartModel),
		"grid":       chartModel.Grid,
	})
}

// История построенных карт
func (h *Handler) GetCharts(ctx *gin.Context) {
	query := ctx.Query("query")

	var charts []models.Chart
	var err error

	if query == "" {
		charts, err = h.Repository.GetCharts()
	} else {
		charts, err = h.Repository.SearchCharts(query)
	}

	if err != nil {
		logrus.Error("Ошибка получения истории карт: ", err)
		ctx.String(http.StatusInternalServerError, "Ошибка загрузки истории")
		return
	}

	ctx.HTML(http.StatusOK, "pageCharts.html", gin.H{
		"charts": charts,
		"query":  query,
	})
}

// PNG карты из MinIO
func (h *Handler) GetChartImage(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.String(http.StatusBadRequest, "Неверный ID карты")
		return
	}

	chartModel, err := h.Repository.GetChart(id)
	if err != nil {
		ctx.String(http.StatusNotFound, "Карта не найдена")
		return
	}

	data, err := h.Storage.LoadChart(ctx.Request.Context(), chartModel.ObjectKey)
	if err != nil {
		logrus.Error("Ошибка чтения PNG из MinIO: ", err)
		ctx.String(http.StatusInternalServerError, "Ошибка чтения карты")
		return
	}

	ctx.Data(http.StatusOK, "image/png", data)
}

// Удаление карты вместе с PNG
func (h *Handler) DeleteChart(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.String(http.StatusBadRequest, "Неверный ID карты")
		return
	}

	chartModel, err := h.Repository.GetChart(id)
	if err != nil {
		ctx.String(http.StatusNotFound, "Карта не найдена")
		return
	}

	if err := h.Storage.DeleteChart(ctx.Request.Context(), chartModel.ObjectKey); err != nil {
		// запись в истории важнее висящего объекта
		logrus.Warn("Не удалось удалить PNG из MinIO: ", err)
	}

	if err := h.Repository.DeleteChart(id); err != nil {
		logrus.Error("Ошибка удаления карты: ", err)
		ctx.String(http.StatusInternalServerError, "Ошибка удаления карты")
		return
	}

	logrus.Infof("Карта #%d удалена", id)
	ctx.Redirect(http.StatusSeeOther, "/charts")
}

// webError — сообщение для баннера на странице по виду ошибки конвейера
func webError(err error) (int, string) {
	switch {
	case errors.Is(err, geocoder.ErrLocationNotFound):
		return http.StatusNotFound, "Место не найдено. Уточните название, например 'Boston, MA'."
	case errors.Is(err, resolver.ErrTimeParse):
		return http.StatusBadRequest, "Неверный формат даты и времени. Нужен вид ГГГГ-ММ-ДД ЧЧ:ММ."
	case errors.Is(err, resolver.ErrTimezoneUnresolved):
		return http.StatusUnprocessableEntity, "Для этого места не удалось определить часовой пояс."
	default:
		return http.StatusInternalServerError, "Не удалось построить карту, попробуйте ещё раз."
	}
}

// formatObserved — момент наблюдения в местном времени карты
func formatObserved(c *models.Chart) string {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return c.ObservedAt.UTC().Format("2006-01-02 15:04") + " UTC"
	}
	return c.ObservedAt.In(loc).Format("2006-01-02 15:04 MST")
}

// localWhen — местное время карты в формате поля формы
func localWhen(c *models.Chart) string {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return c.ObservedAt.UTC().Format(resolver.TimeLayout)
	}
	return c.ObservedAt.In(loc).Format(resolver.TimeLayout)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// Страница каталога звёзд с поиском по имени
func (h *Handler) GetStars(ctx *gin.Context) {
	query := ctx.Query("query")

	var stars []models.Star
	var err error

	if query == "" {
		stars, err = h.Repository.GetStars()
	} else {
		stars, err = h.Repository.SearchStars(query)
	}

	if err != nil {
		logrus.Error("Ошибка получения звёзд: ", err)
		ctx.String(http.StatusInternalServerError, "Ошибка загрузки каталога")
		return
	}

	ctx.HTML(http.StatusOK, "pageStars.html", gin.H{
		"stars": stars,
		"query": query,
	})
}

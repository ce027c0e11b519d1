package handler

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/LLLgoyour/StarScope/internal/app/api"
	"github.com/LLLgoyour/StarScope/internal/app/chart"
	"github.com/LLLgoyour/StarScope/internal/app/repository"
	"github.com/LLLgoyour/StarScope/internal/app/storage"
)

type Handler struct {
	Repository *repository.Repository
	Charts     *chart.Service
	Storage    *storage.Storage
}

func NewHandler(r *repository.Repository, charts *chart.Service, store *storage.Storage) *Handler {
	return &Handler{Repository: r, Charts: charts, Storage: store}
}

func (h *Handler) RegisterHandler(rou *gin.Engine) {
	rou.GET("/", h.ChartPage)
	rou.POST("/chart", h.GenerateChart)

	rou.GET("/charts", h.GetCharts)
	rou.GET("/charts/:id", h.GetChart)
	rou.GET("/charts/:id/image", h.GetChartImage)
	rou.POST("/charts/:id/delete", h.DeleteChart)

	rou.GET("/stars", h.GetStars)

	api.RegisterRoutes(rou, h.Repository, h.Charts, h.Storage)
}

func (h *Handler) RegisterStatic(rou *gin.Engine) {
	absPath, _ := filepath.Abs("templates/*")
	rou.LoadHTMLGlob(absPath)
	rou.Static("/styles", "./resources/styles")
}

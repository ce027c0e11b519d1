package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LLLgoyour/StarScope/internal/app/chart"
	"github.com/LLLgoyour/StarScope/internal/app/middleware"
	"github.com/LLLgoyour/StarScope/internal/app/repository"
	"github.com/LLLgoyour/StarScope/internal/app/storage"
)

func RegisterRoutes(r *gin.Engine, repository *repository.Repository, charts *chart.Service, store *storage.Storage) {
	api := r.Group("/api")

	api.Use(middleware.CORSMiddleware())

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	InitChartAPI(repository, charts, store, api)
	InitStarAPI(repository, api)
	InitUserAPI(repository, api)
}

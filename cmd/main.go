package main

import (
	"github.com/LLLgoyour/StarScope/internal/app/chart"
	"github.com/LLLgoyour/StarScope/internal/app/config"
	"github.com/LLLgoyour/StarScope/internal/app/geocoder"
	"github.com/LLLgoyour/StarScope/internal/app/handler"
	"github.com/LLLgoyour/StarScope/internal/app/middleware"
	"github.com/LLLgoyour/StarScope/internal/app/redisdb"
	"github.com/LLLgoyour/StarScope/internal/app/repository"
	"github.com/LLLgoyour/StarScope/internal/app/resolver"
	"github.com/LLLgoyour/StarScope/internal/app/storage"
	app "github.com/LLLgoyour/StarScope/internal/pkg"

	"log"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/ringsaturn/tzf"
)

func main() {
	// --- Загружаем конфиг ---
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфига: %v", err)
	}

	// --- Подключаемся к БД ---
	repo, err := repository.NewRepository(cfg.DSN)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	if err := repo.Migrate(); err != nil {
		log.Fatalf("Ошибка миграции: %v", err)
	}

	// --- Redis: сессии и кэш геокодера ---
	redisClient := redisdb.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
	repo.Redis = repository.NewRedisRepository(redisClient, cfg.Redis.CacheTTL)
	middleware.InitAuth(repo)

	// --- MinIO: PNG готовых карт ---
	store, err := storage.NewStorage(cfg.Minio)
	if err != nil {
		log.Fatalf("Ошибка подключения к MinIO: %v", err)
	}

	// --- Конвейер построения карты: геокодер, часовой пояс, проекция ---
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		log.Fatalf("Ошибка загрузки данных часовых поясов: %v", err)
	}
	geo := geocoder.NewClient(cfg.Geocoder, repo.Redis)
	res := resolver.NewResolver(geo, finder)
	charts, err := chart.NewService(res, repo, chart.Options{
		SizePx:            cfg.Chart.SizePx,
		MaxStarSize:       cfg.Chart.MaxStarSize,
		LimitingMagnitude: cfg.Chart.LimitingMagnitude,
	})
	if err != nil {
		log.Fatalf("Ошибка инициализации отрисовки: %v", err)
	}

	// --- Создаем handler ---
	h := handler.NewHandler(repo, charts, store)

	// --- Создаем Gin роутер ---
	router := gin.Default()

	// --- Запуск ---
	application := app.NewApp(cfg, router, h)
	application.RunApp()
}

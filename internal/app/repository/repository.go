package repository

import (
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

type Repository struct {
	DB    *gorm.DB
	Redis *RedisRepository

	// снимок активной части каталога: карты строятся по нему,
	// а не по запросу в БД на каждое построение
	mu     sync.RWMutex
	bright []models.Star
}

func NewRepository(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Repository{DB: db}, nil
}

func NewRepositoryFromDB(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Migrate создаёт недостающие таблицы по моделям.
func (r *Repository) Migrate() error {
	return r.DB.AutoMigrate(
		&models.User{},
		&models.Star{},
		&models.Chart{},
		&models.ChartMarker{},
	)
}

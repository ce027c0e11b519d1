package repository

import (
	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// ============================
// Получение всех карт (история)
// ============================
func (r *Repository) GetCharts() ([]models.Chart, error) {
	var charts []models.Chart
	err := r.DB.Order("created_at DESC").Find(&charts).Error
	if err != nil {
		return nil, err
	}
	return charts, nil
}

// ============================
// Поиск карт по названию места
// ============================
func (r *Repository) SearchCharts(location string) ([]models.Chart, error) {
	var charts []models.Chart
	err := r.DB.Where("location ILIKE ?", "%"+location+"%").
		Order("created_at DESC").Find(&charts).Error
	if err != nil {
		return nil, err
	}
	return charts, nil
}

// ============================
// Получение карты по ID вместе с маркерами звёзд
// ============================
func (r *Repository) GetChart(id int) (*models.Chart, error) {
	var chart models.Chart
	err := r.DB.Preload("Markers").First(&chart, "chart_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &chart, nil
}

// ============================
// Сохранение новой карты (маркеры создаются вместе с ней)
// ============================
func (r *Repository) CreateChart(chart *models.Chart) error {
	return r.DB.Create(chart).Error
}

// ============================
// Удаление карты и её маркеров
// ============================
func (r *Repository) DeleteChart(id int) error {
	if err := r.DB.Where("chart_id = ?", id).Delete(&models.ChartMarker{}).Error; err != nil {
		return err
	}
	return r.DB.Delete(&models.Chart{}, "chart_id = ?", id).Error
}

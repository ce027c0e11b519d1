package repository

import (
	"context"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// pageLimit — сколько звёзд показываем на странице каталога.
// Полный Hipparcos это ~118 тысяч строк, столько в HTML не нужно.
const pageLimit = 500

// GetStars возвращает ярчайшие звёзды каталога, включая скрытые.
func (r *Repository) GetStars() ([]models.Star, error) {
	var stars []models.Star
	err := r.DB.Order("magnitude").Limit(pageLimit).Find(&stars).Error

	if err != nil {
		return nil, err
	}

	return stars, nil
}

// SearchStars ищет звёзды по собственному имени.
func (r *Repository) SearchStars(query string) ([]models.Star, error) {
	var stars []models.Star
	err := r.DB.Where("name ILIKE ?", "%"+query+"%").Order("magnitude").Limit(pageLimit).Find(&stars).Error
	if err != nil {
		return nil, err
	}
	return stars, nil
}

func (r *Repository) GetStarByID(hip int) (*models.Star, error) {
	var star models.Star
	if err := r.DB.First(&star, "hip = ?", hip).Error; err != nil {
		return nil, err
	}
	return &star, nil
}

// BrightStars отдаёт снимок активных звёзд не тусклее limit. Снимок
// читается из БД один раз и живёт до первого изменения каталога.
func (r *Repository) BrightStars(ctx context.Context, limit float64) ([]models.Star, error) {
	r.mu.RLock()
	snapshot := r.bright
	r.mu.RUnlock()

	if snapshot == nil {
		var err error
		snapshot, err = r.loadBright(ctx)
		if err != nil {
			return nil, err
		}
	}

	stars := make([]models.Star, 0, len(snapshot))
	for _, s := range snapshot {
		if s.Magnitude <= limit {
			stars = append(stars, s)
		}
	}
	return stars, nil
}

func (r *Repository) loadBright(ctx context.Context) ([]models.Star, error) {
	var stars []models.Star
	err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("magnitude").Find(&stars).Error
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.bright = stars
	r.mu.Unlock()
	return stars, nil
}

// invalidateStars сбрасывает снимок после изменения каталога.
func (r *Repository) invalidateStars() {
	r.mu.Lock()
	r.bright = nil
	r.mu.Unlock()
}

func (r *Repository) CreateStar(star *models.Star) error {
	if err := r.DB.Create(star).Error; err != nil {
		return err
	}
	r.invalidateStars()
	return nil
}

func (r *Repository) UpdateStar(star *models.Star) error {
	if err := r.DB.Save(star).Error; err != nil {
		return err
	}
	r.invalidateStars()
	return nil
}

// DeleteStar скрывает звезду из каталога, не удаляя запись.
func (r *Repository) DeleteStar(hip int) (int64, error) {
	result := r.DB.Model(&models.Star{}).Where("hip = ?", hip).Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}
	r.invalidateStars()
	return result.RowsAffected, nil
}

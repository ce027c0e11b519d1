package chart

import (
	"math"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// minHitRadius — зона наведения в пикселях: даже самые тусклые точки
// размером меньше пикселя должны ловиться курсором.
const minHitRadius = 4.0

// MarkerAt находит маркер звезды под курсором. Если под курсор попадает
// несколько звёзд, берётся ближайшая к нему; nil — под курсором пусто.
func MarkerAt(markers []models.ChartMarker, x, y float64) *models.ChartMarker {
	var best *models.ChartMarker
	bestDist := math.MaxFloat64
	for i := range markers {
		m := &markers[i]
		hit := m.Radius
		if hit < minHitRadius {
			hit = minHitRadius
		}
		dx, dy := x-m.X, y-m.Y
		dist := dx*dx + dy*dy
		if dist <= hit*hit && dist < bestDist {
			bestDist = dist
			best = m
		}
	}
	return best
}

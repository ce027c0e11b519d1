package chart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// наблюдатель на северном полюсе: зенит совпадает с полюсом мира,
// и склонение звезды напрямую задаёт её высоту
func northPole() *models.Observation {
	return &models.Observation{
		Location:  "North Pole",
		Latitude:  90,
		Longitude: 0,
		Timezone:  "UTC",
		UTC:       time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMarkerSize(t *testing.T) {
	assert.InDelta(t, 80.0, MarkerSize(80, 0), 1e-9)
	assert.InDelta(t, 8.0, MarkerSize(80, 2.5), 1e-9)
	assert.InDelta(t, 800.0, MarkerSize(80, -2.5), 1e-9)
	assert.InDelta(t, 80*math.Pow(10, -2.4), MarkerSize(80, 6), 1e-9)

	// ярче звезда — крупнее маркер
	prev := MarkerSize(80, -2)
	for mag := -1.5; mag <= 7; mag += 0.5 {
		cur := MarkerSize(80, mag)
		assert.Less(t, cur, prev, "mag=%v", mag)
		prev = cur
	}
}

func TestBuildMarkersMagnitudeCutoff(t *testing.T) {
	stars := []models.Star{
		{HIP: 1, Magnitude: 5.99, DecDeg: 89},
		{HIP: 2, Magnitude: 6.0, DecDeg: 89},
		{HIP: 3, Magnitude: 6.01, DecDeg: 89},
	}
	markers := BuildMarkers(stars, northPole(), Options{})

	require.Len(t, markers, 2)
	assert.Equal(t, 1, markers[0].HIP)
	// граница включительно
	assert.Equal(t, 2, markers[1].HIP)
}

func TestBuildMarkersGeometry(t *testing.T) {
	opts := Options{SizePx: 800}
	stars := []models.Star{
		{HIP: 1, Name: "зенит", RADeg: 123, DecDeg: 90, Magnitude: 1},
		{HIP: 2, Name: "горизонт", RADeg: 0, DecDeg: 0, Magnitude: 1},
		{HIP: 3, Name: "под горизонтом", RADeg: 0, DecDeg: -30, Magnitude: 1},
	}
	markers := BuildMarkers(stars, northPole(), opts)
	require.Len(t, markers, 3)

	// звезда в зените — в центре холста
	assert.InDelta(t, 400, markers[0].X, 1e-6)
	assert.InDelta(t, 400, markers[0].Y, 1e-6)

	// звезда на горизонте — ровно на единичной окружности
	r1 := math.Hypot(markers[1].X-400, markers[1].Y-400)
	assert.InDelta(t, opts.scale(), r1, 1e-6)

	// звезда под горизонтом не отбрасывается, но лежит за окружностью
	r2 := math.Hypot(markers[2].X-400, markers[2].Y-400)
	assert.Greater(t, r2, opts.scale())
	assert.False(t, opts.InDisc(markers[2].X, markers[2].Y))
}

func TestBuildMarkersRadiusOrder(t *testing.T) {
	stars := []models.Star{
		{HIP: 1, DecDeg: 80, Magnitude: -1.44},
		{HIP: 2, DecDeg: 70, Magnitude: 2.0},
		{HIP: 3, DecDeg: 60, Magnitude: 5.5},
	}
	markers := BuildMarkers(stars, northPole(), Options{})
	require.Len(t, markers, 3)
	assert.Greater(t, markers[0].Radius, markers[1].Radius)
	assert.Greater(t, markers[1].Radius, markers[2].Radius)
}

func TestVisibleMarkers(t *testing.T) {
	stars := []models.Star{
		{HIP: 1, DecDeg: 45, Magnitude: 1},
		{HIP: 2, DecDeg: -45, Magnitude: 1},
		{HIP: 3, DecDeg: 5, Magnitude: 1},
	}
	markers := BuildMarkers(stars, northPole(), Options{})
	visible := VisibleMarkers(markers, Options{})

	require.Len(t, visible, 2)
	for _, m := range visible {
		assert.NotEqual(t, 2, m.HIP)
	}
}

func TestMarkerAt(t *testing.T) {
	markers := []models.ChartMarker{
		{HIP: 1, Name: "Sirius", X: 400, Y: 400, Radius: 10},
		{HIP: 2, Name: "Vega", X: 450, Y: 400, Radius: 6},
		{HIP: 3, X: 100, Y: 100, Radius: 0.3},
	}

	hit := MarkerAt(markers, 403, 401)
	require.NotNil(t, hit)
	assert.Equal(t, "Sirius", hit.Name)

	// из двух накрытых берётся ближайшая
	hit = MarkerAt(markers, 447, 400)
	require.NotNil(t, hit)
	assert.Equal(t, "Vega", hit.Name)

	// субпиксельная точка всё равно ловится в пределах minHitRadius
	hit = MarkerAt(markers, 102, 102)
	require.NotNil(t, hit)
	assert.Equal(t, 3, hit.HIP)

	assert.Nil(t, MarkerAt(markers, 600, 600))
	assert.Nil(t, MarkerAt(nil, 400, 400))
}

package chart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

type fixedResolver struct {
	obs *models.Observation
	err error
}

func (f *fixedResolver) Resolve(_ context.Context, _, _ string) (*models.Observation, error) {
	return f.obs, f.err
}

type sliceCatalog struct {
	stars []models.Star
	err   error
}

func (c *sliceCatalog) BrightStars(_ context.Context, limit float64) ([]models.Star, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]models.Star, 0, len(c.stars))
	for _, s := range c.stars {
		if s.Magnitude <= limit {
			out = append(out, s)
		}
	}
	return out, nil
}

// каталожные координаты ICRS ярчайших звёзд
var testStars = []models.Star{
	{HIP: 32349, Name: "Sirius", RADeg: 101.28715539, DecDeg: -16.71611582, Magnitude: -1.44, IsActive: true},
	{HIP: 91262, Name: "Vega", RADeg: 279.23473479, DecDeg: 38.78368896, Magnitude: 0.03, IsActive: true},
	{HIP: 11767, Name: "Polaris", RADeg: 37.95456067, DecDeg: 89.26410897, Magnitude: 1.97, IsActive: true},
	{HIP: 27989, Name: "Betelgeuse", RADeg: 88.79293899, DecDeg: 7.40706399, Magnitude: 0.45, IsActive: true},
	{HIP: 30438, Name: "Canopus", RADeg: 95.9878779, DecDeg: -52.69571799, Magnitude: -0.62, IsActive: true},
	{HIP: 99999, RADeg: 104.0, DecDeg: 42.0, Magnitude: 7.2, IsActive: true},
}

func bostonMidnight() *models.Observation {
	return &models.Observation{
		Location:  "Boston, Suffolk County, Massachusetts, United States",
		Latitude:  42.3601,
		Longitude: -71.0589,
		Timezone:  "America/New_York",
		LocalTime: time.Date(2023, 1, 1, 5, 0, 0, 0, time.UTC),
		UTC:       time.Date(2023, 1, 1, 5, 0, 0, 0, time.UTC),
	}
}

func TestServiceGenerate(t *testing.T) {
	svc, err := NewService(&fixedResolver{obs: bostonMidnight()}, &sliceCatalog{stars: testStars}, Options{})
	require.NoError(t, err)

	c, pngData, err := svc.Generate(context.Background(), models.ChartRequest{
		Location: "Boston",
		When:     "2023-01-01 00:00",
		Grid:     true,
	})
	require.NoError(t, err)
	require.NotNil(t, c)

	byHIP := map[int]models.ChartMarker{}
	for _, m := range c.Markers {
		byHIP[m.HIP] = m
	}

	// над горизонтом Бостона в эту ночь: Сириус, Полярная, Бетельгейзе
	assert.Contains(t, byHIP, 32349)
	assert.Contains(t, byHIP, 11767)
	assert.Contains(t, byHIP, 27989)
	// Вега уже зашла, а Канопус из Бостона не восходит вовсе
	assert.NotContains(t, byHIP, 91262)
	assert.NotContains(t, byHIP, 30438)
	// звёзды тусклее предельной величины отсеяны ещё до проекции
	assert.NotContains(t, byHIP, 99999)

	assert.Equal(t, len(c.Markers), c.StarCount)
	assert.True(t, c.Grid)
	assert.Equal(t, "America/New_York", c.Timezone)
	assert.Contains(t, c.Location, "Boston")
	assert.True(t, c.ObservedAt.Equal(time.Date(2023, 1, 1, 5, 0, 0, 0, time.UTC)))

	opts := svc.Options()
	for _, m := range c.Markers {
		assert.True(t, opts.InDisc(m.X, m.Y), "HIP %d вне диска горизонта", m.HIP)
	}

	// наведение на координаты Сириуса возвращает его же
	sirius := byHIP[32349]
	hit := MarkerAt(c.Markers, sirius.X, sirius.Y)
	require.NotNil(t, hit)
	assert.Equal(t, "Sirius", hit.Name)

	img := decodePNG(t, pngData)
	assert.Equal(t, 800, img.Bounds().Dx())

	// в точке Сириуса прорисована белая точка
	r, g, b := rgbAt(img, int(sirius.X), int(sirius.Y))
	assert.Greater(t, r, uint32(200))
	assert.Greater(t, g, uint32(200))
	assert.Greater(t, b, uint32(200))
}

func TestServiceResolveErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("нет такого места")
	svc, err := NewService(&fixedResolver{err: sentinel}, &sliceCatalog{}, Options{})
	require.NoError(t, err)

	_, _, err = svc.Generate(context.Background(), models.ChartRequest{Location: "x", When: "2023-01-01 00:00"})
	assert.ErrorIs(t, err, sentinel)
}

func TestServiceCatalogError(t *testing.T) {
	svc, err := NewService(&fixedResolver{obs: bostonMidnight()}, &sliceCatalog{err: errors.New("база недоступна")}, Options{})
	require.NoError(t, err)

	_, _, err = svc.Generate(context.Background(), models.ChartRequest{Location: "Boston", When: "2023-01-01 00:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "каталога")
}

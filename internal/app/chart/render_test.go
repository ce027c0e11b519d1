package chart

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func rgbAt(img image.Image, x, y int) (r, g, b uint32) {
	r, g, b, _ = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestRenderColors(t *testing.T) {
	opts := Options{SizePx: 200}
	renderer, err := NewRenderer(opts)
	require.NoError(t, err)

	markers := []models.ChartMarker{
		{HIP: 1, X: 100, Y: 100, Radius: 6},
	}
	data, err := renderer.Render(markers, false)
	require.NoError(t, err)

	img := decodePNG(t, data)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	// угол холста — чёрное небо за горизонтом
	r, g, b := rgbAt(img, 2, 2)
	assert.Less(t, r, uint32(20))
	assert.Less(t, g, uint32(20))
	assert.Less(t, b, uint32(20))

	// звезда в центре — белая
	r, g, b = rgbAt(img, 100, 100)
	assert.Greater(t, r, uint32(200))
	assert.Greater(t, g, uint32(200))
	assert.Greater(t, b, uint32(200))

	// внутри диска, в стороне от звезды — тёмно-синий
	r, g, b = rgbAt(img, 100, 150)
	assert.Less(t, r, uint32(40))
	assert.Less(t, g, uint32(40))
	assert.Greater(t, b, uint32(90))
}

func TestRenderClipsBelowHorizon(t *testing.T) {
	opts := Options{SizePx: 200}
	renderer, err := NewRenderer(opts)
	require.NoError(t, err)

	// маркер за пределами диска горизонта: точка не должна прорисоваться
	markers := []models.ChartMarker{
		{HIP: 1, X: 10, Y: 10, Radius: 6},
	}
	data, err := renderer.Render(markers, false)
	require.NoError(t, err)

	img := decodePNG(t, data)
	r, g, b := rgbAt(img, 10, 10)
	assert.Less(t, r, uint32(20))
	assert.Less(t, g, uint32(20))
	assert.Less(t, b, uint32(20))
}

// ищет серый пиксель сетки на горизонтальном луче азимута 0°
func hasGrayOnSpoke(img image.Image, size int) bool {
	cy := size / 2
	for x := size/2 + 10; x < size/2+int(0.8*float64(size)/2); x++ {
		r, g, b := rgbAt(img, x, cy)
		if r > 80 && r < 200 && g > 80 && g < 200 && b > 80 && b < 200 {
			return true
		}
	}
	return false
}

func TestRenderGridToggle(t *testing.T) {
	// нечётная сторона: луч азимута 0° ложится ровно на строку пикселей,
	// а не размазывается между двумя соседними
	opts := Options{SizePx: 201}
	renderer, err := NewRenderer(opts)
	require.NoError(t, err)

	withGrid, err := renderer.Render(nil, true)
	require.NoError(t, err)
	withoutGrid, err := renderer.Render(nil, false)
	require.NoError(t, err)

	assert.True(t, hasGrayOnSpoke(decodePNG(t, withGrid), 201))
	assert.False(t, hasGrayOnSpoke(decodePNG(t, withoutGrid), 201))
}

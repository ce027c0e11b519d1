package chart

import (
	"math"

	"github.com/LLLgoyour/StarScope/internal/app/astro"
	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// Options — параметры построения карты.
type Options struct {
	SizePx            int     // сторона холста в пикселях
	MaxStarSize       float64 // площадь маркера звезды нулевой величины
	LimitingMagnitude float64 // предельная звёздная величина (включительно)
}

func (o Options) withDefaults() Options {
	if o.SizePx <= 0 {
		o.SizePx = 800
	}
	if o.MaxStarSize <= 0 {
		o.MaxStarSize = 80
	}
	if o.LimitingMagnitude == 0 {
		o.LimitingMagnitude = 6
	}
	return o
}

// горизонт (единичная окружность) занимает не весь холст:
// по краю остаётся поле под подписи азимутов на радиусе 1.05
const horizonFraction = 0.92

// center — центр холста в пикселях (зенит).
func (o Options) center() float64 {
	return float64(o.SizePx) / 2
}

// scale — пикселей в одной единице проекции.
func (o Options) scale() float64 {
	return float64(o.SizePx) / 2 * horizonFraction
}

// MarkerSize — «площадь» маркера звезды: чем ярче звезда (меньше величина),
// тем крупнее точка. Формула повторяет шкалу блеска: на каждые 2.5 величины
// площадь меняется в десять раз.
func MarkerSize(maxStarSize, magnitude float64) float64 {
	return maxStarSize * math.Pow(10, magnitude/-2.5)
}

// markerRadius — радиус точки в пикселях для звезды данной величины.
func (o Options) markerRadius(magnitude float64) float64 {
	return math.Sqrt(MarkerSize(o.MaxStarSize, magnitude)) * 0.5 * float64(o.SizePx) / 800
}

// BuildMarkers проецирует звёзды ярче предельной величины на холст.
// Звёзды под горизонтом не отбрасываются: их координаты попадают за
// единичную окружность, и при отрисовке их срежет маска горизонта.
func BuildMarkers(stars []models.Star, obs *models.Observation, opts Options) []models.ChartMarker {
	opts = opts.withDefaults()

	raDeg, decDeg := astro.Zenith(obs.UTC, obs.Latitude, obs.Longitude)
	proj := astro.NewProjector(raDeg, decDeg)

	cx := opts.center()
	scale := opts.scale()

	bright := make([]models.Star, 0, len(stars))
	for _, star := range stars {
		if star.Magnitude <= opts.LimitingMagnitude {
			bright = append(bright, star)
		}
	}

	markers := make([]models.ChartMarker, 0, len(bright))
	for _, p := range proj.ProjectStars(bright) {
		if math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		markers = append(markers, models.ChartMarker{
			HIP:       p.Star.HIP,
			Name:      p.Star.Name,
			Magnitude: p.Star.Magnitude,
			// ось Y холста направлена вниз
			X:      cx + p.X*scale,
			Y:      cx - p.Y*scale,
			Radius: opts.markerRadius(p.Star.Magnitude),
		})
	}
	return markers
}

// azimuthDirection — единичный вектор луча азимута в координатах проекции.
func azimuthDirection(azDeg float64) (x, y float64) {
	a := azDeg * math.Pi / 180
	return math.Cos(a), math.Sin(a)
}

// InDisc сообщает, лежит ли точка холста внутри диска горизонта.
func (o Options) InDisc(x, y float64) bool {
	o = o.withDefaults()
	cx := o.center()
	dx, dy := x-cx, y-cx
	return dx*dx+dy*dy <= o.scale()*o.scale()
}

// VisibleMarkers отбирает маркеры над горизонтом: только они видны на
// карте и только по ним работают подсказки.
func VisibleMarkers(markers []models.ChartMarker, opts Options) []models.ChartMarker {
	opts = opts.withDefaults()
	visible := make([]models.ChartMarker, 0, len(markers))
	for _, m := range markers {
		if opts.InDisc(m.X, m.Y) {
			visible = append(visible, m)
		}
	}
	return visible
}

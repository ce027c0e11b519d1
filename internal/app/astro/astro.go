package astro

import (
	"math"
	"time"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

const j2000 = 2451545.0 // юлианская дата эпохи J2000.0 (2000-01-01 12:00 TT)

// JulianDate — юлианская дата момента t. Эпоха Unix соответствует JD 2440587.5.
func JulianDate(t time.Time) float64 {
	return float64(t.UnixMilli())/86400000.0 + 2440587.5
}

// GreenwichSiderealTime — гринвичское звёздное время в градусах [0, 360).
// Полином IAU для среднего звёздного времени плюс главные члены нутации
// (уравнение равноденствий); точности с запасом хватает для карты неба.
func GreenwichSiderealTime(t time.Time) float64 {
	jd := JulianDate(t)
	d := jd - j2000
	tc := d / 36525.0

	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*tc*tc - tc*tc*tc/38710000.0

	// нутация по долготе, угловые секунды (усечённый ряд Миуса)
	omega := 125.04452 - 1934.136261*tc // долгота восходящего узла Луны
	lsun := 280.4665 + 36000.7698*tc    // средняя долгота Солнца
	dpsi := -17.20*sinDeg(omega) - 1.32*sinDeg(2*lsun)
	eps := 23.4392911 - 0.0130042*tc // наклон эклиптики

	return normalizeDeg(gmst + dpsi*cosDeg(eps)/3600.0)
}

// Zenith — экваториальные координаты зенита наблюдателя: прямое восхождение
// равно местному звёздному времени, склонение — широте места.
func Zenith(t time.Time, latDeg, lonDeg float64) (raDeg, decDeg float64) {
	return normalizeDeg(GreenwichSiderealTime(t) + lonDeg), latDeg
}

// Projected — звезда каталога с координатами на плоскости карты.
// Значения действительны только для пары (место, момент), их породившей.
type Projected struct {
	Star models.Star
	X    float64
	Y    float64
}

// Projector — стереографическая проекция небесной сферы с центром в зените.
// Точка на угловом расстоянии θ от центра ложится на радиус tan(θ/2):
// зенит в начале координат, горизонт — единичная окружность, всё ниже
// горизонта проецируется за её пределы.
type Projector struct {
	// орты касательной плоскости: e — на восток (рост RA), n — на север, z — к зениту
	ex, ey, ez float64
	nx, ny, nz float64
	zx, zy, zz float64
}

// NewProjector строит проекцию с центром в точке (raDeg, decDeg).
func NewProjector(raDeg, decDeg float64) *Projector {
	sinA, cosA := math.Sincos(radians(raDeg))
	sinD, cosD := math.Sincos(radians(decDeg))
	return &Projector{
		ex: -sinA, ey: cosA, ez: 0,
		nx: -sinD * cosA, ny: -sinD * sinA, nz: cosD,
		zx: cosD * cosA, zy: cosD * sinA, zz: sinD,
	}
}

// Project переводит точку сферы (RA/Dec в градусах) в координаты карты.
func (p *Projector) Project(raDeg, decDeg float64) (x, y float64) {
	sinA, cosA := math.Sincos(radians(raDeg))
	sinD, cosD := math.Sincos(radians(decDeg))
	vx, vy, vz := cosD*cosA, cosD*sinA, sinD

	ve := vx*p.ex + vy*p.ey + vz*p.ez
	vn := vx*p.nx + vy*p.ny + vz*p.nz
	vc := vx*p.zx + vy*p.zy + vz*p.zz

	den := 1 + vc
	if den < 1e-12 {
		// надир: уходит в бесконечность, рисовальщик такое всё равно отсечёт
		return math.Inf(1), math.Inf(1)
	}
	return ve / den, vn / den
}

// ProjectStars применяет проекцию ко всем звёздам каталога. Звёзды ниже
// горизонта не отбрасываются — их отсекает рисовальщик по окружности.
func (p *Projector) ProjectStars(stars []models.Star) []Projected {
	out := make([]Projected, 0, len(stars))
	for _, s := range stars {
		x, y := p.Project(s.RADeg, s.DecDeg)
		out = append(out, Projected{Star: s, X: x, Y: y})
	}
	return out
}

// AltitudeRadius — радиус проекции для заданной высоты над горизонтом:
// r = tan((90° − alt)/2). Зенит (90°) даёт 0, горизонт (0°) даёт 1.
func AltitudeRadius(altDeg float64) float64 {
	return math.Tan(radians(90-altDeg) / 2)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func sinDeg(deg float64) float64 { return math.Sin(radians(deg)) }

func cosDeg(deg float64) float64 { return math.Cos(radians(deg)) }

func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

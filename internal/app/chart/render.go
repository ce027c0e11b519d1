package chart

import (
	"bytes"
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/LLLgoyour/StarScope/internal/app/astro"
	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// Renderer рисует карту звёздного неба в PNG.
type Renderer struct {
	opts Options
	face text.Face
}

// NewRenderer готовит отрисовщик: один источник шрифта на всё приложение.
func NewRenderer(opts Options) (*Renderer, error) {
	opts = opts.withDefaults()
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("шрифт подписей: %w", err)
	}
	return &Renderer{
		opts: opts,
		face: source.Face(10 * float64(opts.SizePx) / 800),
	}, nil
}

// Render рисует карту: чёрное небо, тёмно-синий диск горизонта, белые
// звёзды. Всё, что выходит за горизонт, срезается маской. Сетка
// высот и азимутов включается флагом grid.
func (r *Renderer) Render(markers []models.ChartMarker, grid bool) ([]byte, error) {
	o := r.opts
	cx := o.center()
	scale := o.scale()

	dc := gg.NewContext(o.SizePx, o.SizePx)
	dc.SetFont(r.face)
	dc.ClearWithColor(gg.Black)

	// диск горизонта
	dc.SetHexColor("#000080")
	dc.DrawCircle(cx, cx, scale)
	dc.Fill()

	if grid {
		r.drawAltitudeRings(dc)
	}

	// звёзды поверх колец сетки, с обрезкой по горизонту
	dc.Push()
	dc.DrawCircle(cx, cx, scale)
	dc.Clip()
	dc.SetRGB(1, 1, 1)
	for _, m := range markers {
		dc.DrawCircle(m.X, m.Y, m.Radius)
		dc.Fill()
	}
	dc.Pop()

	if grid {
		r.drawAzimuthSpokes(dc)
		r.drawAltitudeLabels(dc)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("кодирование PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// кольца равных высот: 15°..75° с шагом 15°
func (r *Renderer) drawAltitudeRings(dc *gg.Context) {
	o := r.opts
	cx := o.center()
	scale := o.scale()

	dc.SetRGB(0.5, 0.5, 0.5)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	for alt := 15; alt < 90; alt += 15 {
		dc.DrawCircle(cx, cx, astro.AltitudeRadius(float64(alt))*scale)
		dc.Stroke()
	}
	dc.ClearDash()
}

// лучи азимутов от зенита к горизонту, каждые 30°, с подписями за горизонтом
func (r *Renderer) drawAzimuthSpokes(dc *gg.Context) {
	o := r.opts
	cx := o.center()
	scale := o.scale()

	dc.SetRGB(0.5, 0.5, 0.5)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	for az := 0; az < 360; az += 30 {
		x, y := azimuthDirection(float64(az))
		dc.DrawLine(cx, cx, cx+x*scale, cx-y*scale)
		dc.Stroke()
	}
	dc.ClearDash()

	for az := 0; az < 360; az += 30 {
		x, y := azimuthDirection(float64(az))
		dc.DrawStringAnchored(fmt.Sprintf("%d°", az), cx+1.05*x*scale, cx-1.05*y*scale, 0.5, 0.5)
	}
}

// подписи высот над северной половиной каждого кольца
func (r *Renderer) drawAltitudeLabels(dc *gg.Context) {
	o := r.opts
	cx := o.center()
	scale := o.scale()

	dc.SetRGB(0.5, 0.5, 0.5)
	for alt := 15; alt < 90; alt += 15 {
		radius := astro.AltitudeRadius(float64(alt)) * scale
		dc.DrawStringAnchored(fmt.Sprintf("%d°", alt), cx, cx-radius, 0.5, 0)
	}
}

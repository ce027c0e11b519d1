package chart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// Resolver — «место + местное время» -> точка наблюдения.
type Resolver interface {
	Resolve(ctx context.Context, location, when string) (*models.Observation, error)
}

// Catalog — звёзды каталога не тусклее предельной величины.
type Catalog interface {
	BrightStars(ctx context.Context, limit float64) ([]models.Star, error)
}

// Service строит карту неба по запросу: геокодирование места, перевод
// времени в UTC, проекция каталога, отбор по величине, отрисовка.
type Service struct {
	resolver Resolver
	catalog  Catalog
	renderer *Renderer
	opts     Options
}

func NewService(resolver Resolver, catalog Catalog, opts Options) (*Service, error) {
	opts = opts.withDefaults()
	renderer, err := NewRenderer(opts)
	if err != nil {
		return nil, err
	}
	return &Service{
		resolver: resolver,
		catalog:  catalog,
		renderer: renderer,
		opts:     opts,
	}, nil
}

// Options возвращает действующие параметры построения.
func (s *Service) Options() Options {
	return s.opts
}

// Generate выполняет весь конвейер и возвращает карту с маркерами звёзд
// над горизонтом и готовый PNG.
func (s *Service) Generate(ctx context.Context, req models.ChartRequest) (*models.Chart, []byte, error) {
	obs, err := s.resolver.Resolve(ctx, req.Location, req.When)
	if err != nil {
		return nil, nil, err
	}

	stars, err := s.catalog.BrightStars(ctx, s.opts.LimitingMagnitude)
	if err != nil {
		return nil, nil, fmt.Errorf("чтение каталога: %w", err)
	}

	markers := BuildMarkers(stars, obs, s.opts)
	png, err := s.renderer.Render(markers, req.Grid)
	if err != nil {
		return nil, nil, err
	}

	visible := VisibleMarkers(markers, s.opts)
	logrus.Infof("Карта для %q на %s: %d звёзд над горизонтом", obs.Location,
		obs.UTC.Format("2006-01-02 15:04 UTC"), len(visible))

	return &models.Chart{
		Location:   obs.Location,
		Latitude:   obs.Latitude,
		Longitude:  obs.Longitude,
		Timezone:   obs.Timezone,
		ObservedAt: obs.UTC,
		Grid:       req.Grid,
		StarCount:  len(visible),
		Markers:    visible,
	}, png, nil
}

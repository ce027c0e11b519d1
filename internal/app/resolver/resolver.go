package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LLLgoyour/StarScope/internal/app/geocoder"
	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// TimeLayout — формат даты и времени наблюдения в запросах.
const TimeLayout = "2006-01-02 15:04"

var (
	// ErrTimeParse — дата наблюдения не соответствует формату TimeLayout.
	ErrTimeParse = errors.New("неверный формат даты и времени")
	// ErrTimezoneUnresolved — для найденных координат не определился часовой пояс.
	ErrTimezoneUnresolved = errors.New("не удалось определить часовой пояс")
)

// Geocoder — название места -> координаты.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geocoder.Place, error)
}

// TimezoneFinder — координаты -> название часового пояса IANA.
// Порядок аргументов как в tzf: сначала долгота.
type TimezoneFinder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Resolver превращает пару "место + местное время" в точку наблюдения
// с координатами и временем в UTC.
type Resolver struct {
	geo Geocoder
	tz  TimezoneFinder
}

func NewResolver(geo Geocoder, tz TimezoneFinder) *Resolver {
	return &Resolver{geo: geo, tz: tz}
}

// Resolve геокодирует место, находит его часовой пояс и разбирает местное
// время наблюдения. Формат времени проверяется до обращения к геокодеру.
func (r *Resolver) Resolve(ctx context.Context, location, when string) (*models.Observation, error) {
	when = strings.TrimSpace(when)
	if _, err := time.Parse(TimeLayout, when); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTimeParse, when)
	}

	place, err := r.geo.Geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	zone := r.tz.GetTimezoneName(place.Longitude, place.Latitude)
	if zone == "" {
		return nil, fmt.Errorf("%w: %.4f, %.4f", ErrTimezoneUnresolved, place.Latitude, place.Longitude)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTimezoneUnresolved, zone)
	}

	localTime, err := time.ParseInLocation(TimeLayout, when, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTimeParse, when)
	}

	return &models.Observation{
		Location:  place.DisplayName,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		Timezone:  zone,
		LocalTime: localTime,
		UTC:       localTime.UTC(),
	}, nil
}

package resolver

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LLLgoyour/StarScope/internal/app/geocoder"
)

type fakeGeocoder struct {
	place *geocoder.Place
	err   error
	calls int
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) (*geocoder.Place, error) {
	f.calls++
	return f.place, f.err
}

type fakeTZ struct {
	zone string
}

func (f *fakeTZ) GetTimezoneName(_ float64, _ float64) string {
	return f.zone
}

func TestResolve(t *testing.T) {
	geo := &fakeGeocoder{place: &geocoder.Place{
		DisplayName: "Boston, Suffolk County, Massachusetts, United States",
		Latitude:    42.3601,
		Longitude:   -71.0589,
	}}
	r := NewResolver(geo, &fakeTZ{zone: "America/New_York"})

	obs, err := r.Resolve(context.Background(), "Boston", "2023-01-01 00:00")
	require.NoError(t, err)

	assert.Contains(t, obs.Location, "Boston")
	assert.InDelta(t, 42.3601, obs.Latitude, 1e-9)
	assert.InDelta(t, -71.0589, obs.Longitude, 1e-9)
	assert.Equal(t, "America/New_York", obs.Timezone)

	// зимой Бостон живёт по UTC-5
	want := time.Date(2023, 1, 1, 5, 0, 0, 0, time.UTC)
	assert.True(t, obs.UTC.Equal(want), "ожидалось %v, получено %v", want, obs.UTC)
	assert.True(t, obs.LocalTime.Equal(want))
}

func TestResolveSummerTime(t *testing.T) {
	geo := &fakeGeocoder{place: &geocoder.Place{
		DisplayName: "Paris, Île-de-France, France",
		Latitude:    48.8589,
		Longitude:   2.32,
	}}
	r := NewResolver(geo, &fakeTZ{zone: "Europe/Paris"})

	obs, err := r.Resolve(context.Background(), "Paris", "2023-07-01 12:00")
	require.NoError(t, err)

	want := time.Date(2023, 7, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, obs.UTC.Equal(want), "ожидалось %v, получено %v", want, obs.UTC)
}

func TestResolveBadTime(t *testing.T) {
	geo := &fakeGeocoder{place: &geocoder.Place{Latitude: 1, Longitude: 1}}
	r := NewResolver(geo, &fakeTZ{zone: "UTC"})

	for _, when := range []string{"2023/01/01 00:00", "01-01-2023 00:00", "2023-01-01", "полночь", ""} {
		_, err := r.Resolve(context.Background(), "Boston", when)
		assert.ErrorIs(t, err, ErrTimeParse, "when=%q", when)
	}
	// при неверной дате до геокодера дело не доходит
	assert.Equal(t, 0, geo.calls)
}

func TestResolveLocationNotFound(t *testing.T) {
	geo := &fakeGeocoder{err: geocoder.ErrLocationNotFound}
	r := NewResolver(geo, &fakeTZ{zone: "UTC"})

	_, err := r.Resolve(context.Background(), "Atlantis", "2023-01-01 00:00")
	assert.ErrorIs(t, err, geocoder.ErrLocationNotFound)
}

func TestResolveTimezoneUnresolved(t *testing.T) {
	// точка посреди океана: место нашлось, пояс — нет
	geo := &fakeGeocoder{place: &geocoder.Place{
		DisplayName: "Null Island",
		Latitude:    0,
		Longitude:   0,
	}}
	r := NewResolver(geo, &fakeTZ{zone: ""})

	_, err := r.Resolve(context.Background(), "Null Island", "2023-01-01 00:00")
	assert.ErrorIs(t, err, ErrTimezoneUnresolved)
}

func TestResolveUnknownZoneName(t *testing.T) {
	geo := &fakeGeocoder{place: &geocoder.Place{Latitude: 1, Longitude: 1}}
	r := NewResolver(geo, &fakeTZ{zone: "Mars/Olympus_Mons"})

	_, err := r.Resolve(context.Background(), "Olympus Mons", "2023-01-01 00:00")
	assert.ErrorIs(t, err, ErrTimezoneUnresolved)
}

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LLLgoyour/StarScope/internal/app/geocoder"
	"github.com/LLLgoyour/StarScope/internal/app/models"
	"github.com/LLLgoyour/StarScope/internal/app/resolver"
)

func TestAPIErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"место не найдено", geocoder.ErrLocationNotFound, http.StatusNotFound},
		{"обёрнутая ошибка места", fmt.Errorf("геокодер: %w", geocoder.ErrLocationNotFound), http.StatusNotFound},
		{"плохое время", fmt.Errorf("%w: %q", resolver.ErrTimeParse, "01.01.2023"), http.StatusBadRequest},
		{"нет часового пояса", fmt.Errorf("%w: 0.0, 0.0", resolver.ErrTimezoneUnresolved), http.StatusUnprocessableEntity},
		{"прочее", fmt.Errorf("сеть недоступна"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := apiError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestValidStar(t *testing.T) {
	good := models.Star{HIP: 91262, Name: "Vega", RADeg: 279.23, DecDeg: 38.78, Magnitude: 0.03}
	assert.Empty(t, validStar(&good))

	noHIP := good
	noHIP.HIP = 0
	assert.NotEmpty(t, validStar(&noHIP))

	badRA := good
	badRA.RADeg = 360
	assert.NotEmpty(t, validStar(&badRA))

	badDec := good
	badDec.DecDeg = -90.5
	assert.NotEmpty(t, validStar(&badDec))
}

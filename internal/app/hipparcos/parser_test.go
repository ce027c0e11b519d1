package hipparcos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Реальные строки из hip_main.dat, урезанные до первых полей.
const sample = `H|           1| |00 00 00.22|+01 05 20.4| 9.10| |H|000.00091185|+01.08901332|   3.54|
H|       32349| |06 45 09.25|-16 42 47.3|-1.44| |H|101.28715539|-16.71611582|  379.21|
H|       91262| |18 36 56.19|+38 46 58.8| 0.03| |H|279.23473479|+38.78368896|  128.93|
H|       55203| |11 18 10.95|+31 31 45.7| 3.79| |H|169.54562500|+31.52936000|       |
`

func TestParse(t *testing.T) {
	stars, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, stars, 4)

	assert.Equal(t, 1, stars[0].HIP)
	assert.InDelta(t, 0.00091185, stars[0].RADeg, 1e-8)
	assert.InDelta(t, 1.08901332, stars[0].DecDeg, 1e-8)
	assert.InDelta(t, 9.10, stars[0].Magnitude, 1e-9)
	assert.Empty(t, stars[0].Name)
	assert.True(t, stars[0].IsActive)

	// Сириус: отрицательная величина и собственное имя
	assert.Equal(t, 32349, stars[1].HIP)
	assert.Equal(t, "Sirius", stars[1].Name)
	assert.InDelta(t, -1.44, stars[1].Magnitude, 1e-9)

	assert.Equal(t, "Vega", stars[2].Name)
}

func TestParseSkipsBrokenLines(t *testing.T) {
	broken := strings.Join([]string{
		"H|      123| |x|x| 5.00| |H|            |+10.00000000|   1.00|", // нет RA
		"H|      124| |x|x|     | |H|010.00000000|+10.00000000|   1.00|", // нет величины
		"H|      125| |x|x| 5.00| |H|010.00000000|            |   1.00|", // нет Dec
		"H|         | |x|x| 5.00| |H|010.00000000|+10.00000000|   1.00|", // нет номера
		"короткая строка",
		"H|      126| |x|x| 5.00| |H|010.00000000|+10.00000000|   1.00|", // нормальная
	}, "\n")

	stars, err := Parse(strings.NewReader(broken))
	require.NoError(t, err)
	require.Len(t, stars, 1)
	assert.Equal(t, 126, stars[0].HIP)
}

func TestParseEmpty(t *testing.T) {
	stars, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, stars)
}

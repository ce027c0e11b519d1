package hipparcos

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LLLgoyour/StarScope/internal/app/models"
)

// URL — основной каталог Hipparcos на CDS (тот же источник, что и у skyfield).
const URL = "https://cdsarc.u-strasbg.fr/ftp/cats/I/239/hip_main.dat"

// Номера полей в hip_main.dat (разделитель «|», нумерация с нуля).
const (
	fieldHIP   = 1
	fieldVmag  = 5
	fieldRAdeg = 8
	fieldDEdeg = 9
	minFields  = 10
)

// ProperNames — собственные имена ярких звёзд по номеру HIP.
// Каталог имён не содержит, а подпись «Vega» полезнее, чем «HIP 91262».
var ProperNames = map[int]string{
	677:    "Alpheratz",
	11767:  "Polaris",
	21421:  "Aldebaran",
	24436:  "Rigel",
	24608:  "Capella",
	25336:  "Bellatrix",
	26311:  "Alnilam",
	27989:  "Betelgeuse",
	30438:  "Canopus",
	32349:  "Sirius",
	33579:  "Adhara",
	36850:  "Castor",
	37279:  "Procyon",
	37826:  "Pollux",
	46390:  "Alphard",
	49669:  "Regulus",
	54061:  "Dubhe",
	57632:  "Denebola",
	62956:  "Alioth",
	65474:  "Spica",
	67301:  "Alkaid",
	69673:  "Arcturus",
	71683:  "Rigil Kentaurus",
	80763:  "Antares",
	85927:  "Shaula",
	91262:  "Vega",
	97649:  "Altair",
	100751: "Peacock",
	102098: "Deneb",
	113368: "Fomalhaut",
	113963: "Markab",
}

// Parse читает каталог Hipparcos (hip_main.dat) и возвращает записи каталога
// с подставленными собственными именами. Строки без астрометрии или видимой
// величины пропускаются — в каталоге их пара сотен.
func Parse(r io.Reader) ([]models.Star, error) {
	var stars []models.Star

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Split(sc.Text(), "|")
		if len(fields) < minFields {
			continue
		}

		hip, err := strconv.Atoi(strings.TrimSpace(fields[fieldHIP]))
		if err != nil {
			continue
		}

		mag, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldVmag]), 64)
		if err != nil {
			continue
		}
		ra, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldRAdeg]), 64)
		if err != nil {
			continue
		}
		dec, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldDEdeg]), 64)
		if err != nil {
			continue
		}

		stars = append(stars, models.Star{
			HIP:       hip,
			Name:      ProperNames[hip],
			RADeg:     ra,
			DecDeg:    dec,
			Magnitude: mag,
			IsActive:  true,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("чтение каталога (строка %d): %w", line, err)
	}
	return stars, nil
}

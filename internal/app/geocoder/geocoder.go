package geocoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/LLLgoyour/StarScope/internal/app/config"
)

// ErrLocationNotFound — геокодер не нашёл ни одного совпадения по запросу.
var ErrLocationNotFound = errors.New("местоположение не найдено")

// Place — результат геокодирования.
type Place struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Cache — кэш результатов геокодирования. Промах — (nil, nil).
// В проде это Redis; повторные запросы к Nominatim по одному и тому же
// месту без кэша нарушают его правила использования.
type Cache interface {
	GetPlace(ctx context.Context, query string) (*Place, error)
	SetPlace(ctx context.Context, query string, place *Place) error
}

// Client — клиент Nominatim (OpenStreetMap).
type Client struct {
	baseURL   string
	userAgent string
	hc        *http.Client
	cache     Cache
}

// NewClient создаёт клиент геокодера. cache может быть nil — тогда каждый
// запрос уходит в сеть.
func NewClient(cfg config.GeocoderConfig, cache Cache) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		hc:        &http.Client{Timeout: timeout},
		cache:     cache,
	}
}

// ответ Nominatim: координаты приходят строками
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Geocode превращает название места в координаты. Сначала смотрим в кэш,
// затем идём в Nominatim; пустой ответ — ErrLocationNotFound.
func (c *Client) Geocode(ctx context.Context, query string) (*Place, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil, ErrLocationNotFound
	}

	if c.cache != nil {
		place, err := c.cache.GetPlace(ctx, key)
		if err != nil {
			logrus.Warn("Кэш геокодера недоступен: ", err)
		} else if place != nil {
			return place, nil
		}
	}

	reqURL := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("запрос геокодера: %w", err)
	}
	// Nominatim требует осмысленный User-Agent
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос геокодера: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ответ геокодера: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("геокодер вернул статус %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("разбор ответа геокодера: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("широта в ответе геокодера: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("долгота в ответе геокодера: %w", err)
	}

	place := &Place{DisplayName: results[0].DisplayName, Latitude: lat, Longitude: lon}

	if c.cache != nil {
		if err := c.cache.SetPlace(ctx, key, place); err != nil {
			logrus.Warn("Не удалось закэшировать место: ", err)
		}
	}
	return place, nil
}

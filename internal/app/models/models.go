package models

import (
	"strconv"
	"time"
)

// User — пользователь сервиса. Модератор имеет право менять каталог звёзд.
type User struct {
	UserID       int    `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username     string `gorm:"column:username"`
	PasswordHash string `gorm:"column:password_hash"`
	IsModerator  bool   `gorm:"column:is_moderator"`
}

// Star — запись каталога Hipparcos. Координаты ICRS в градусах,
// Magnitude — видимая звёздная величина (меньше = ярче).
type Star struct {
	HIP       int     `gorm:"column:hip;primaryKey" json:"hip"`
	Name      string  `gorm:"column:name" json:"name,omitempty"` // собственное имя, если есть (Sirius, Vega, ...)
	RADeg     float64 `gorm:"column:ra_deg" json:"ra_deg"`
	DecDeg    float64 `gorm:"column:dec_deg" json:"dec_deg"`
	Magnitude float64 `gorm:"column:magnitude" json:"magnitude"`
	IsActive  bool    `gorm:"column:is_active" json:"is_active"`
}

// ChartRequest — данные формы/JSON «как есть», до разбора.
type ChartRequest struct {
	Location string `json:"location"`
	When     string `json:"when"` // формат "2006-01-02 15:04", локальное время места
	Grid     bool   `json:"grid"`
}

// Observation — разрешённая точка наблюдения: координаты места,
// его часовой пояс и момент наблюдения в UTC.
type Observation struct {
	Location  string
	Latitude  float64
	Longitude float64
	Timezone  string
	LocalTime time.Time
	UTC       time.Time
}

// Chart — метаданные сгенерированной карты. Сам PNG лежит в MinIO
// под ObjectKey, здесь только параметры запроса и результат.
type Chart struct {
	ChartID    int       `gorm:"column:chart_id;primaryKey;autoIncrement" json:"chart_id"`
	CreatorID  *int      `gorm:"column:creator_id" json:"creator_id,omitempty"`
	Location   string    `gorm:"column:location" json:"location"`
	Latitude   float64   `gorm:"column:latitude" json:"latitude"`
	Longitude  float64   `gorm:"column:longitude" json:"longitude"`
	Timezone   string    `gorm:"column:timezone" json:"timezone"`
	ObservedAt time.Time `gorm:"column:observed_at" json:"observed_at"` // момент наблюдения в UTC
	Grid       bool      `gorm:"column:grid" json:"grid"`
	StarCount  int       `gorm:"column:star_count" json:"star_count"`
	ObjectKey  string    `gorm:"column:object_key" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	Markers []ChartMarker `gorm:"foreignKey:ChartID;references:ChartID" json:"-"`
}

// ChartMarker — звезда, попавшая на карту: пиксельные координаты маркера,
// по которым строятся подсказки при наведении курсора.
type ChartMarker struct {
	ChartID   int     `gorm:"column:chart_id;primaryKey" json:"-"`
	HIP       int     `gorm:"column:hip;primaryKey" json:"hip"`
	Name      string  `gorm:"column:name" json:"name,omitempty"`
	Magnitude float64 `gorm:"column:magnitude" json:"magnitude"`
	X         float64 `gorm:"column:x" json:"x"`
	Y         float64 `gorm:"column:y" json:"y"`
	Radius    float64 `gorm:"column:radius" json:"radius"`
}

// Label — подпись маркера для подсказки: имя звезды,
// а если имени нет — номер по каталогу.
func (m ChartMarker) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return "HIP " + strconv.Itoa(m.HIP)
}

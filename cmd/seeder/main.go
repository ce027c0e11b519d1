// Command seeder загружает каталог Hipparcos (hip_main.dat) в PostgreSQL.
// Запускается отдельно от сервера, один раз при разворачивании.
//
// Флаги:
//
//	-file   локальный hip_main.dat (пусто = скачать каталог с CDS)
//	-dsn    строка подключения PostgreSQL
//	-admin  создать модератора, формат "логин:пароль"
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/LLLgoyour/StarScope/internal/app/hipparcos"
	"github.com/LLLgoyour/StarScope/internal/app/models"
	"github.com/LLLgoyour/StarScope/internal/app/repository"
)

// Таблицы совпадают со схемой AutoMigrate, чтобы сидер можно было
// запускать и до первого старта сервера, и после.
const initSQL = `
CREATE TABLE IF NOT EXISTS stars (
  hip BIGINT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  ra_deg DOUBLE PRECISION NOT NULL,
  dec_deg DOUBLE PRECISION NOT NULL,
  magnitude DOUBLE PRECISION NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE TABLE IF NOT EXISTS users (
  user_id SERIAL PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  is_moderator BOOLEAN NOT NULL DEFAULT FALSE
);
`

func main() {
	fileFlag := flag.String("file", "", "локальный hip_main.dat (пусто = скачать с CDS)")
	dsnFlag := flag.String("dsn",
		"host=127.0.0.1 port=5432 user=alex password=password123 dbname=starscope sslmode=disable",
		"строка подключения PostgreSQL")
	adminFlag := flag.String("admin", "", "создать модератора, формат логин:пароль")
	flag.Parse()

	// --- Читаем каталог ---
	stars, err := loadCatalog(*fileFlag)
	if err != nil {
		log.Fatalf("Ошибка чтения каталога: %v", err)
	}
	log.Printf("Каталог прочитан: %d звёзд", len(stars))

	// --- Подключаемся к БД ---
	db, err := sqlx.Connect("postgres", *dsnFlag)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(initSQL); err != nil {
		log.Fatalf("Ошибка создания таблиц: %v", err)
	}

	// --- Заливаем звёзды ---
	start := time.Now()
	if err := insertStars(db, stars); err != nil {
		log.Fatalf("Ошибка записи каталога: %v", err)
	}
	var total int
	if err := db.Get(&total, "SELECT COUNT(*) FROM stars"); err != nil {
		log.Fatalf("Ошибка проверки каталога: %v", err)
	}
	log.Printf("Каталог загружен: %d звёзд за %s", total, time.Since(start).Round(time.Millisecond))

	// --- Модератор ---
	if *adminFlag != "" {
		if err := upsertAdmin(db, *adminFlag); err != nil {
			log.Fatalf("Ошибка создания модератора: %v", err)
		}
	}
}

// loadCatalog читает hip_main.dat из файла или скачивает его с CDS.
func loadCatalog(path string) ([]models.Star, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return hipparcos.Parse(f)
	}

	log.Printf("Скачиваем %s (около 50 МБ)", hipparcos.URL)
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(hipparcos.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("статус %s", resp.Status)
	}
	return hipparcos.Parse(resp.Body)
}

func insertStars(db *sqlx.DB, stars []models.Star) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	stmt := `
INSERT INTO stars (hip, name, ra_deg, dec_deg, magnitude, is_active)
VALUES ($1, $2, $3, $4, $5, TRUE)
ON CONFLICT (hip) DO UPDATE SET
 name=EXCLUDED.name,
 ra_deg=EXCLUDED.ra_deg,
 dec_deg=EXCLUDED.dec_deg,
 magnitude=EXCLUDED.magnitude;
`
	for _, s := range stars {
		if _, err := tx.Exec(stmt, s.HIP, s.Name, s.RADeg, s.DecDeg, s.Magnitude); err != nil {
			tx.Rollback()
			return fmt.Errorf("вставка HIP %d: %w", s.HIP, err)
		}
	}
	return tx.Commit()
}

// upsertAdmin создает модератора или обновляет пароль существующего.
// Через API права модератора получить нельзя, только здесь.
func upsertAdmin(db *sqlx.DB, cred string) error {
	username, password, ok := strings.Cut(cred, ":")
	if !ok || username == "" || password == "" {
		return fmt.Errorf("ожидается формат логин:пароль")
	}

	hash, err := repository.HashPassword(password)
	if err != nil {
		return err
	}

	var id int
	err = db.Get(&id, "SELECT user_id FROM users WHERE username = $1", username)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(
			"INSERT INTO users (username, password_hash, is_moderator) VALUES ($1, $2, TRUE)",
			username, hash)
	case err == nil:
		_, err = db.Exec(
			"UPDATE users SET password_hash = $1, is_moderator = TRUE WHERE user_id = $2",
			hash, id)
	}
	if err != nil {
		return err
	}

	log.Printf("Модератор %q создан", username)
	return nil
}

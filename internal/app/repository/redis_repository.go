package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/LLLgoyour/StarScope/internal/app/geocoder"
	"github.com/LLLgoyour/StarScope/internal/app/models"
)

type RedisRepository struct {
	client   *redis.Client
	cacheTTL time.Duration
}

func NewRedisRepository(client *redis.Client, cacheTTL time.Duration) *RedisRepository {
	if cacheTTL <= 0 {
		cacheTTL = 24 * time.Hour
	}
	return &RedisRepository{client: client, cacheTTL: cacheTTL}
}

func (r *RedisRepository) CacheUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("user:%d", user.UserID)
	return r.client.Set(ctx, key, data, 10*time.Minute).Err()
}

func (r *RedisRepository) GetCachedUser(ctx context.Context, userID int) (*models.User, error) {
	key := fmt.Sprintf("user:%d", userID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPlace достаёт закэшированный результат геокодирования; промах — (nil, nil).
func (r *RedisRepository) GetPlace(ctx context.Context, query string) (*geocoder.Place, error) {
	data, err := r.client.Get(ctx, "place:"+query).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var place geocoder.Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

// SetPlace кэширует результат геокодирования, чтобы не ходить в Nominatim
// за одним и тем же местом.
func (r *RedisRepository) SetPlace(ctx context.Context, query string, place *geocoder.Place) error {
	data, err := json.Marshal(place)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "place:"+query, data, r.cacheTTL).Err()
}

// SetSession сохраняет session:<token> = userID (строка) с TTL
func (r *RedisRepository) SetSession(ctx context.Context, token string, userID int, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", token)
	val := strconv.Itoa(userID)
	return r.client.Set(ctx, key, val, ttl).Err()
}

// GetSession возвращает userID по токену
func (r *RedisRepository) GetSession(ctx context.Context, token string) (int, error) {
	key := fmt.Sprintf("session:%s", token)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RedisRepository) DeleteSession(ctx context.Context, token string) error {
	key := fmt.Sprintf("session:%s", token)
	return r.client.Del(ctx, key).Err()
}

package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"roomlink/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Room caching (active listings on the tenant read path)
	GetRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error)
	SetRoom(ctx context.Context, room *models.Room, ttl time.Duration) error
	DeleteRoom(ctx context.Context, roomID uuid.UUID) error
	InvalidateRooms(ctx context.Context) error

	// Owner dashboard caching
	GetOwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*models.OwnerDashboard, error)
	SetOwnerDashboard(ctx context.Context, dashboard *models.OwnerDashboard, ttl time.Duration) error
	DeleteOwnerDashboard(ctx context.Context, ownerID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations for refresh token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port and rediss://host:port forms as well
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func roomKey(roomID uuid.UUID) string {
	return fmt.Sprintf("roomlink:room:%s", roomID.String())
}

func dashboardKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("roomlink:dashboard:%s", ownerID.String())
}

func (r *redisCacheService) GetRoom(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	data, err := r.client.Get(ctx, roomKey(roomID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *redisCacheService) SetRoom(ctx context.Context, room *models.Room, ttl time.Duration) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, roomKey(room.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteRoom(ctx context.Context, roomID uuid.UUID) error {
	return r.client.Del(ctx, roomKey(roomID)).Err()
}

func (r *redisCacheService) InvalidateRooms(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "roomlink:room:*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) GetOwnerDashboard(ctx context.Context, ownerID uuid.UUID) (*models.OwnerDashboard, error) {
	data, err := r.client.Get(ctx, dashboardKey(ownerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var dashboard models.OwnerDashboard
	if err := json.Unmarshal(data, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (r *redisCacheService) SetOwnerDashboard(ctx context.Context, dashboard *models.OwnerDashboard, ttl time.Duration) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, dashboardKey(dashboard.OwnerID), data, ttl).Err()
}

func (r *redisCacheService) DeleteOwnerDashboard(ctx context.Context, ownerID uuid.UUID) error {
	return r.client.Del(ctx, dashboardKey(ownerID)).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("roomlink:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

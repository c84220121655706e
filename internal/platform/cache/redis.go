package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rgdevment/scam-shield/internal/domain"
)

// Verdicts go stale fast; an hour keeps repeat lookups cheap without
// serving yesterday's risk.
const phoneRiskTTL = time.Hour

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisCache stores the latest assessment per phone number.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) GetPhoneRisk(ctx context.Context, phoneNumber string) (*domain.PhoneRisk, error) {
	raw, err := c.client.Get(ctx, phoneRiskKey(phoneNumber)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: failed to get phone risk: %w", err)
	}

	var risk domain.PhoneRisk
	if err := json.Unmarshal([]byte(raw), &risk); err != nil {
		return nil, fmt.Errorf("cache: failed to decode phone risk: %w", err)
	}
	return &risk, nil
}

func (c *RedisCache) SetPhoneRisk(ctx context.Context, risk *domain.PhoneRisk) error {
	raw, err := json.Marshal(risk)
	if err != nil {
		return fmt.Errorf("cache: failed to encode phone risk: %w", err)
	}
	if err := c.client.Set(ctx, phoneRiskKey(risk.PhoneNumber), raw, phoneRiskTTL).Err(); err != nil {
		return fmt.Errorf("cache: failed to set phone risk: %w", err)
	}
	return nil
}

func phoneRiskKey(phoneNumber string) string {
	return "phone_risk:" + phoneNumber
}

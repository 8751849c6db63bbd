package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const recommendationKeyPrefix = "recommendation:"

type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetRecommendation возвращает закэшированную рекомендацию. Промах — (nil, nil).
// Битая запись удаляется и считается промахом.
func (c *CacheRepo) GetRecommendation(ctx context.Context, key string) (*domain.Recommendation, error) {
	redisKey := recommendationKey(key)

	data, err := c.client.Client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.RecommendationRedisModel
	if err := json.Unmarshal(data, &model); err != nil || model.ProductID == "" {
		c.logger.Warnf("Broken cache entry %s, dropping", redisKey)
		if err := c.client.Client.Del(ctx, redisKey).Err(); err != nil {
			c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}
		return nil, nil
	}

	return converter.ToDomain(&model), nil
}

// SetRecommendation кэширует рекомендацию модели на RecommendationTTL с джиттером,
// чтобы записи одной волны не истекали одновременно.
func (c *CacheRepo) SetRecommendation(ctx context.Context, key string, rec domain.Recommendation) error {
	data, err := json.Marshal(converter.ToRedisModel(&rec))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	ttl := jitter.Duration(c.cfg.RecommendationTTL, jitter.DefaultFactor)
	if err := c.client.Client.Set(ctx, recommendationKey(key), data, ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// recommendationKey возвращает Redis-ключ для набора ответов
func recommendationKey(answersKey string) string {
	return recommendationKeyPrefix + answersKey
}

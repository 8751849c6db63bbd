package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationKey(t *testing.T) {
	assert.Equal(t, "recommendation:driver_type=ev;vehicle_age=new", recommendationKey("driver_type=ev;vehicle_age=new"))
}

func TestConverterDropsSource(t *testing.T) {
	rec := domain.Recommendation{ProductID: "ev-battery-suite", Reasoning: "r", ConfidenceScore: 77, Source: domain.SourceModel}

	got := converter.ToDomain(converter.ToRedisModel(&rec))
	assert.Equal(t, "ev-battery-suite", got.ProductID)
	assert.Equal(t, "r", got.Reasoning)
	assert.Equal(t, float64(77), got.ConfidenceScore)
	assert.Empty(t, got.Source)
}

func TestUnreachableRedisReturnsError(t *testing.T) {
	rc := &cfg.RedisCfg{
		Addr:              "127.0.0.1:1",
		MaxRetries:        -1,
		DialTimeout:       100 * time.Millisecond,
		Timeout:           100 * time.Millisecond,
		RecommendationTTL: time.Minute,
	}
	client := clients.NewRedisClient(rc)
	t.Cleanup(func() { _ = client.Close() })

	repo := NewCacheRepo(client, rc, logger.NewDiscardLogger())

	rec, err := repo.GetRecommendation(context.Background(), "k")
	require.Error(t, err)
	assert.Nil(t, rec)

	require.Error(t, repo.SetRecommendation(context.Background(), "k", domain.Recommendation{ProductID: "x"}))
}

func newTestRepo(t *testing.T, ttl time.Duration) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rc := &cfg.RedisCfg{Addr: mr.Addr(), RecommendationTTL: ttl}
	client := clients.NewRedisClient(rc)
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheRepo(client, rc, logger.NewDiscardLogger()), mr
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t, 10*time.Minute)

	rec, err := repo.GetRecommendation(ctx, "driver_type=ev")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, repo.SetRecommendation(ctx, "driver_type=ev", domain.Recommendation{
		ProductID:       "ev-battery-suite",
		Reasoning:       "Range matters.",
		ConfidenceScore: 93,
		Source:          domain.SourceModel,
	}))
	assert.True(t, mr.Exists("recommendation:driver_type=ev"))

	rec, err = repo.GetRecommendation(ctx, "driver_type=ev")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "ev-battery-suite", rec.ProductID)
	assert.Equal(t, "Range matters.", rec.Reasoning)
	assert.Equal(t, float64(93), rec.ConfidenceScore)
}

func TestCacheTTLHasJitter(t *testing.T) {
	ttl := 10 * time.Minute
	repo, mr := newTestRepo(t, ttl)

	require.NoError(t, repo.SetRecommendation(context.Background(), "k", domain.Recommendation{ProductID: "x"}))

	got := mr.TTL("recommendation:k")
	assert.GreaterOrEqual(t, got, ttl)
	assert.Less(t, got, ttl+ttl/10)
}

func TestCacheBrokenEntryIsDroppedAsMiss(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t, time.Minute)

	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{broken"},
		{name: "empty product id", value: `{"reasoning":"r","confidence_score":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, mr.Set("recommendation:bad", tt.value))

			rec, err := repo.GetRecommendation(ctx, "bad")
			require.NoError(t, err)
			assert.Nil(t, rec)
			assert.False(t, mr.Exists("recommendation:bad"))
		})
	}
}

package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "API_KEY", "REDIS_ADDR", "KAFKA_BROKERS", "RECOMMENDATION_TIMEOUT",
		"SESSION_TTL", "HTTP_PORT", "MAX_RETRIES", "CATALOG_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	c, err := Load(logger.NewDiscardLogger())
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, "8091", c.Grpc.Port)
	assert.False(t, c.Redis.Enabled())
	assert.False(t, c.Kafka.Enabled())
	assert.False(t, c.GenAI.Configured())
	assert.Equal(t, 5*time.Second, c.GenAI.Timeout)
	assert.Equal(t, "gemini-3-flash-preview", c.GenAI.Model)
	assert.Equal(t, 30*time.Minute, c.Session.TTL)
	assert.Equal(t, "sid", c.Session.CookieName)
	assert.Empty(t, c.Catalog.Path)
}

func TestLoadAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		gemini string
		legacy string
		want   string
	}{
		{name: "gemini key", gemini: "g-key", want: "g-key"},
		{name: "legacy key", legacy: "l-key", want: "l-key"},
		{name: "undefined literal", legacy: "undefined", want: ""},
		{name: "gemini undefined falls back", gemini: "undefined", legacy: "l-key", want: "l-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("API_KEY", tt.legacy)

			c, err := Load(logger.NewDiscardLogger())
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.GenAI.APIKey)
		})
	}
}

func TestLoadOptionalBackends(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	c, err := Load(logger.NewDiscardLogger())
	require.NoError(t, err)

	assert.True(t, c.Redis.Enabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
}

func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("RECOMMENDATION_TIMEOUT", "soon")

	_, err := Load(logger.NewDiscardLogger())
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("MAX_RETRIES", "many")

	_, err = Load(logger.NewDiscardLogger())
	require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}

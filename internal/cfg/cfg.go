package cfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

type Config struct {
	App     *AppCfg
	Http    *HTTPConfig
	Grpc    *GRPCConfig
	Redis   *RedisCfg
	Kafka   *KafkaCfg
	GenAI   *GenAICfg
	Session *SessionCfg
	Catalog *CatalogCfg
}

type AppCfg struct {
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

// RedisCfg — кэш рекомендаций. Пустой Addr отключает кэш.
type RedisCfg struct {
	Addr              string
	Password          string
	User              string
	DB                int
	MaxRetries        int
	DialTimeout       time.Duration
	Timeout           time.Duration
	RecommendationTTL time.Duration
}

func (c *RedisCfg) Enabled() bool { return c.Addr != "" }

// KafkaCfg — аналитические события. Пустой список брокеров отключает публикацию.
type KafkaCfg struct {
	Topic        string
	Brokers      []string
	BatchSize    int
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

func (c *KafkaCfg) Enabled() bool { return len(c.Brokers) > 0 }

// GenAICfg — доступ к Gemini. Отсутствие ключа не ошибка запуска: квиз работает на fallback.
type GenAICfg struct {
	APIKey  string
	Model   string
	Timeout time.Duration // таймаут одного запроса рекомендации
}

func (c *GenAICfg) Configured() bool { return c.APIKey != "" }

type SessionCfg struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	CookieName      string
	CookieSecure    bool
}

type CatalogCfg struct {
	Path string // пусто — встроенный каталог
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Значения из .env подхватываются, если файл есть; переменные окружения имеют приоритет.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to read .env: %v", err)
	}

	app, err := loadAppCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	genai, err := loadGenAICfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		App:     app,
		Http:    http,
		Grpc:    loadGRPCConfig(),
		Redis:   redis,
		Kafka:   kafka,
		GenAI:   genai,
		Session: session,
		Catalog: &CatalogCfg{Path: getEnv("CATALOG_PATH")},
	}, nil
}

func loadAppCfg(log logger.Logger) (*AppCfg, error) {
	const (
		defaultEnv             = "local"
		defaultLogLevel        = "info"
		defaultShutdownTimeout = 10 * time.Second
	)

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		log.Errorf(err, "invalid SHUTDOWN_TIMEOUT")
		return nil, err
	}

	return &AppCfg{
		Env:             getEnvOrDefault("APP_ENV", defaultEnv),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", defaultLogLevel),
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB                = 0
		defaultMaxRetries        = 3
		defaultDialTimeout       = 5 * time.Second
		defaultReadTimeout       = 3 * time.Second
		defaultWriteTimeout      = 3 * time.Second
		defaultRecommendationTTL = 10 * time.Minute
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	ttl, err := parseDurationEnv("RECOMMENDATION_TTL", defaultRecommendationTTL)
	if err != nil {
		log.Errorf(err, "invalid RECOMMENDATION_TTL")
		return nil, err
	}

	return &RedisCfg{
		Addr:              getEnv("REDIS_ADDR"),
		Password:          getEnv("REDIS_PASSWORD"),
		User:              getEnv("REDIS_USER"),
		DB:                db,
		MaxRetries:        maxRetries,
		DialTimeout:       dialTimeout,
		Timeout:           max(readTimeout, writeTimeout),
		RecommendationTTL: ttl,
	}, nil
}

func loadKafkaCfg(log logger.Logger) (*KafkaCfg, error) {
	const (
		defaultTopic        = "storefront-events"
		defaultBatchSize    = 10
		defaultBatchTimeout = 500 * time.Millisecond
		defaultWriteTimeout = 10 * time.Second
	)

	var brokers []string
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	batchSize, err := parseIntEnv("KAFKA_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		log.Errorf(err, "invalid KAFKA_BATCH_SIZE")
		return nil, err
	}

	batchTimeout, err := parseDurationEnv("KAFKA_BATCH_TIMEOUT", defaultBatchTimeout)
	if err != nil {
		log.Errorf(err, "invalid KAFKA_BATCH_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("KAFKA_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid KAFKA_WRITE_TIMEOUT")
		return nil, err
	}

	return &KafkaCfg{
		Topic:        getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Brokers:      brokers,
		BatchSize:    batchSize,
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
	}, nil
}

func loadGenAICfg(log logger.Logger) (*GenAICfg, error) {
	const (
		defaultModel   = "gemini-3-flash-preview"
		defaultTimeout = 5 * time.Second
	)

	timeout, err := parseDurationEnv("RECOMMENDATION_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid RECOMMENDATION_TIMEOUT")
		return nil, err
	}

	apiKey := normalizeAPIKey(getEnv("GEMINI_API_KEY"))
	if apiKey == "" {
		apiKey = normalizeAPIKey(getEnv("API_KEY"))
	}
	if apiKey == "" {
		log.Warnf("Gemini API key not found, quiz recommendations will use local logic")
	}

	return &GenAICfg{
		APIKey:  apiKey,
		Model:   getEnvOrDefault("GEMINI_MODEL", defaultModel),
		Timeout: timeout,
	}, nil
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	const (
		defaultTTL             = 30 * time.Minute
		defaultCleanupInterval = time.Minute
		defaultCookieName      = "sid"
	)

	ttl, err := parseDurationEnv("SESSION_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	interval, err := parseDurationEnv("SESSION_CLEANUP_INTERVAL", defaultCleanupInterval)
	if err != nil {
		log.Errorf(err, "invalid SESSION_CLEANUP_INTERVAL")
		return nil, err
	}

	secure, err := strconv.ParseBool(getEnvOrDefault("SESSION_COOKIE_SECURE", "false"))
	if err != nil {
		log.Errorf(err, "invalid SESSION_COOKIE_SECURE")
		return nil, err
	}

	return &SessionCfg{
		TTL:             ttl,
		CleanupInterval: interval,
		CookieName:      getEnvOrDefault("SESSION_COOKIE_NAME", defaultCookieName),
		CookieSecure:    secure,
	}, nil
}

// normalizeAPIKey отбрасывает пустые значения и строку "undefined",
// которую подставляют сборщики фронтенда при незаданной переменной.
func normalizeAPIKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "undefined" {
		return ""
	}

	return key
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return intValue, nil
}

package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DRSN-tech/storefront/internal/catalog"
	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/gemini"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	closer  *closer.Closer

	sessions *memory.SessionRepo
	quizUC   *usecase.QuizUseCase
}

// NewApp собирает зависимости. Redis и Kafka необязательны: без адресов кэш и
// аналитика отключаются, без ключа Gemini квиз работает на локальной логике.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	log.Infof("catalog loaded: %d products, %d questions", len(cat.Products()), len(cat.Questions()))

	a := &App{
		cfg:      cfg,
		logger:   log,
		closer:   closer.NewCloser(cfg.App.ShutdownTimeout / 2),
		sessions: memory.NewSessionRepo(cfg.Session.TTL, log),
	}

	recommender := gemini.NewRecommender(context.Background(), cfg.GenAI, log)
	if !cfg.GenAI.Configured() {
		log.Warnf("GEMINI_API_KEY is not set, quiz recommendations use local logic")
	}

	var cache usecase.RecommendationCache
	if cfg.Redis.Enabled() {
		cache = a.initRedis()
	} else {
		log.Infof("REDIS_ADDR is not set, recommendation cache disabled")
	}

	var publisher usecase.EventPublisher
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(log, cfg.Kafka)
		a.closer.AddFunc("kafka producer", producer.Close)
		publisher = producer
	} else {
		log.Infof("KAFKA_BROKERS is not set, analytics events disabled")
	}

	a.quizUC = usecase.NewQuizUC(a.sessions, cat, recommender, cache, publisher, cfg.GenAI.Timeout, log)
	a.closer.Add("quiz recommendations", a.quizUC.Wait)

	r := chi.NewRouter()
	v1Http.NewRouter(r, log).Init(&v1Http.UseCases{
		Session: usecase.NewSessionUC(a.sessions, log),
		Catalog: usecase.NewCatalogUC(cat),
		Cart:    usecase.NewCartUC(a.sessions, cat, publisher, log),
		Quiz:    a.quizUC,
	}, cfg.Session)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.grpcSrv.RegisterServices()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	return a, nil
}

// initRedis подключает кэш рекомендаций. Недоступный Redis не останавливает запуск:
// ошибки чтения и записи кэша только логируются.
func (a *App) initRedis() usecase.RecommendationCache {
	client := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddFunc("redis", client.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		a.logger.Warnf("redis is unreachable, cache calls will fail until it is back: %v", err)
	}

	return redis.NewCacheRepo(client, a.cfg.Redis, a.logger)
}

// Run запускает серверы и блокируется до сигнала или фатальной ошибки сервера.
func (a *App) Run() error {
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	cleanupDone := make(chan struct{})
	go func() {
		defer close(cleanupDone)
		a.sessions.RunCleanup(cleanupCtx, a.cfg.Session.CleanupInterval)
	}()
	a.closer.Add("session janitor", func(ctx context.Context) error {
		cleanupCancel()
		select {
		case <-cleanupDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case sig := <-shutdown:
		a.logger.Infof("Received %s, stopping gracefully...", sig)
	}

	// === Graceful shutdown ===
	// Closer идёт в обратном порядке: серверы, ожидание рекомендаций, затем клиенты.
	a.grpcSrv.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.App.ShutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

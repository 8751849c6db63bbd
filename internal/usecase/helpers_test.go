package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/DRSN-tech/storefront/internal/catalog"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// Id продуктов встроенного каталога.
const (
	ProductDailyCoach = "astra-ai-coach"
	ProductFleetGuard = "fleetguard-pro"
	ProductEVBattery  = "ev-battery-suite"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRecommender struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, req *RecommendReq) (*domain.Recommendation, error)
}

func (f *fakeRecommender) Recommend(ctx context.Context, req *RecommendReq) (*domain.Recommendation, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	return f.fn(ctx, req)
}

func (f *fakeRecommender) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]domain.Recommendation
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]domain.Recommendation{}}
}

func (c *fakeCache) GetRecommendation(_ context.Context, key string) (*domain.Recommendation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (c *fakeCache) SetRecommendation(_ context.Context, key string, rec domain.Recommendation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = rec
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *fakePublisher) Publish(_ context.Context, event *domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, *event)
	return nil
}

func (p *fakePublisher) Types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	catalog  *catalog.Catalog
	sessions *memory.SessionRepo
	log      logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	c, err := catalog.Load("")
	require.NoError(t, err)

	log := logger.NewDiscardLogger()
	return &fixture{
		catalog:  c,
		sessions: memory.NewSessionRepo(0, log),
		log:      log,
	}
}

func (f *fixture) newSession(t *testing.T) string {
	t.Helper()

	id, err := f.sessions.Create(context.Background())
	require.NoError(t, err)
	return id
}

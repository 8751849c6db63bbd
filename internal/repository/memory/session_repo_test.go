package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newRepo(ttl time.Duration) (*SessionRepo, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := NewSessionRepo(ttl, logger.NewDiscardLogger())
	repo.now = clock.Now
	return repo, clock
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(time.Minute)

	id, err := repo.Create(ctx)
	require.NoError(t, err)
	assert.True(t, repo.Touch(ctx, id))

	err = repo.Update(ctx, id, func(s *domain.Session) error {
		assert.Equal(t, id, s.ID)
		require.NotNil(t, s.Cart)
		assert.Nil(t, s.Quiz)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	assert.False(t, repo.Touch(ctx, id))
	require.ErrorIs(t, repo.Update(ctx, id, func(*domain.Session) error { return nil }), e.ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	repo, clock := newRepo(time.Minute)

	stale, err := repo.Create(ctx)
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	fresh, err := repo.Create(ctx)
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	assert.False(t, repo.Touch(ctx, stale))
	assert.True(t, repo.Touch(ctx, fresh))

	assert.Equal(t, 1, repo.EvictExpired())
	assert.Equal(t, 1, repo.Len())
}

func TestSessionUpdatePropagatesError(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(0)

	id, err := repo.Create(ctx)
	require.NoError(t, err)

	err = repo.Update(ctx, id, func(*domain.Session) error { return e.ErrQuizBusy })
	require.ErrorIs(t, err, e.ErrQuizBusy)
}

func TestRunCleanupStopsOnCancel(t *testing.T) {
	repo, _ := newRepo(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		repo.RunCleanup(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// SessionRepo хранит сессии в памяти процесса. Каждая сессия защищена своим мьютексом,
// сессии без активности дольше ttl удаляются фоновой очисткой.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
	logger   logger.Logger
}

func NewSessionRepo(ttl time.Duration, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Create создаёт пустую сессию и возвращает её id.
func (r *SessionRepo) Create(_ context.Context) (string, error) {
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{session: domain.NewSession(id, r.now())}
	r.mu.Unlock()

	return id, nil
}

// Touch продлевает сессию. false — сессии нет или она истекла.
func (r *SessionRepo) Touch(_ context.Context, id string) bool {
	entry := r.lookup(id)
	if entry == nil {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if r.expired(entry.session) {
		return false
	}
	entry.session.LastSeen = r.now()
	return true
}

// Update выполняет fn над сессией под её блокировкой.
func (r *SessionRepo) Update(_ context.Context, id string, fn func(s *domain.Session) error) error {
	entry := r.lookup(id)
	if entry == nil {
		return e.Wrap(id, e.ErrSessionNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if r.expired(entry.session) {
		return e.Wrap(id, e.ErrSessionNotFound)
	}
	entry.session.LastSeen = r.now()

	return fn(entry.session)
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	return nil
}

// Len — количество хранимых сессий, включая ещё не вычищенные истёкшие.
func (r *SessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// RunCleanup периодически удаляет истёкшие сессии до отмены ctx.
func (r *SessionRepo) RunCleanup(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictExpired(); n > 0 {
				r.logger.Debugf("evicted %d expired sessions", n)
			}
		}
	}
}

// EvictExpired удаляет истёкшие сессии и возвращает их количество.
func (r *SessionRepo) EvictExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, entry := range r.sessions {
		entry.mu.Lock()
		expired := r.expired(entry.session)
		entry.mu.Unlock()

		if expired {
			delete(r.sessions, id)
			evicted++
		}
	}

	return evicted
}

func (r *SessionRepo) lookup(id string) *sessionEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[id]
}

func (r *SessionRepo) expired(s *domain.Session) bool {
	return r.ttl > 0 && r.now().Sub(s.LastSeen) > r.ttl
}

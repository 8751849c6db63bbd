package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// inflightRun — запущенный запрос рекомендации одной сессии.
type inflightRun struct {
	quiz   *domain.Quiz
	cancel context.CancelFunc
}

// QuizUseCase ведёт квиз посетителя и получает рекомендацию у внешней модели.
// Любая ошибка модели заменяется локальным fallback, квиз всегда доходит до done.
type QuizUseCase struct {
	sessions    SessionRepository
	catalog     CatalogRepository
	recommender RecommenderInfra
	cache       RecommendationCache
	publisher   EventPublisher
	logger      logger.Logger
	timeout     time.Duration

	group    singleflight.Group
	wg       sync.WaitGroup
	mu       sync.Mutex
	inflight map[string]*inflightRun
}

func NewQuizUC(
	sessions SessionRepository,
	catalog CatalogRepository,
	recommender RecommenderInfra,
	cache RecommendationCache,
	publisher EventPublisher,
	timeout time.Duration,
	logger logger.Logger,
) *QuizUseCase {
	const defaultTimeout = 5 * time.Second

	if cache == nil {
		cache = nopCache{}
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &QuizUseCase{
		sessions:    sessions,
		catalog:     catalog,
		recommender: recommender,
		cache:       cache,
		publisher:   publisher,
		logger:      logger,
		timeout:     timeout,
		inflight:    make(map[string]*inflightRun),
	}
}

// StartQuiz открывает квиз. Если квиз уже открыт, возвращается его текущее состояние.
func (q *QuizUseCase) StartQuiz(ctx context.Context, sessionID string) (*QuizView, error) {
	const op = "QuizUseCase.StartQuiz"

	var view *QuizView
	err := q.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if s.Quiz == nil {
			s.Quiz = domain.NewQuiz(q.catalog.Questions())
		}
		view = q.view(s.Quiz)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

func (q *QuizUseCase) GetQuiz(ctx context.Context, sessionID string) (*QuizView, error) {
	const op = "QuizUseCase.GetQuiz"

	var view *QuizView
	err := q.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if s.Quiz == nil {
			return e.ErrQuizNotStarted
		}
		view = q.view(s.Quiz)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// Answer записывает ответ на текущий вопрос. После последнего вопроса квиз переходит
// в analyzing и запускается ровно один асинхронный запрос рекомендации.
func (q *QuizUseCase) Answer(ctx context.Context, req *AnswerReq) (*QuizView, error) {
	const op = "QuizUseCase.Answer"

	var view *QuizView
	err := q.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		if s.Quiz == nil {
			return e.ErrQuizNotStarted
		}

		done, err := s.Quiz.Answer(req.Value)
		if err != nil {
			return err
		}

		// запуск регистрируется под блокировкой сессии, чтобы CloseQuiz всегда его видел
		if done {
			q.launch(req.SessionID, s.Quiz, s.Quiz.Run(), s.Quiz.Answers())
		}
		view = q.view(s.Quiz)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// Restart возвращает завершённый квиз к первому вопросу.
func (q *QuizUseCase) Restart(ctx context.Context, sessionID string) (*QuizView, error) {
	const op = "QuizUseCase.Restart"

	var view *QuizView
	err := q.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		if s.Quiz == nil {
			return e.ErrQuizNotStarted
		}
		if err := s.Quiz.Restart(); err != nil {
			return err
		}
		view = q.view(s.Quiz)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// CloseQuiz закрывает квиз в любом состоянии. Сессия перестаёт ждать незавершённый запрос,
// его результат отбрасывается. Запрос, общий с другими сессиями, продолжается для них.
func (q *QuizUseCase) CloseQuiz(ctx context.Context, sessionID string) error {
	const op = "QuizUseCase.CloseQuiz"

	err := q.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		s.Quiz = nil
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	q.mu.Lock()
	if r, ok := q.inflight[sessionID]; ok {
		r.cancel()
		delete(q.inflight, sessionID)
	}
	q.mu.Unlock()

	return nil
}

// Wait ждёт завершения запущенных запросов рекомендаций или отмены ctx.
func (q *QuizUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// launch запускает запрос рекомендации в фоне с таймаутом.
func (q *QuizUseCase) launch(sessionID string, quiz *domain.Quiz, run uint64, answers domain.Answers) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	current := &inflightRun{quiz: quiz, cancel: cancel}

	q.mu.Lock()
	if prev, ok := q.inflight[sessionID]; ok {
		prev.cancel()
	}
	q.inflight[sessionID] = current
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer q.release(sessionID, current)

		rec := q.recommend(ctx, answers)
		q.resolve(sessionID, quiz, run, rec)
	}()
}

func (q *QuizUseCase) release(sessionID string, r *inflightRun) {
	r.cancel()

	q.mu.Lock()
	if q.inflight[sessionID] == r {
		delete(q.inflight, sessionID)
	}
	q.mu.Unlock()
}

// resolve переводит квиз в done, если он всё ещё ждёт именно этот запуск.
func (q *QuizUseCase) resolve(sessionID string, quiz *domain.Quiz, run uint64, rec domain.Recommendation) {
	const op = "QuizUseCase.resolve"

	resolved := false
	err := q.sessions.Update(context.Background(), sessionID, func(s *domain.Session) error {
		resolved = s.Quiz == quiz && quiz.Resolve(run, rec)
		return nil
	})
	if err != nil {
		q.logger.Warnf("recommendation dropped: %v", e.Wrap(op, err))
		return
	}

	if !resolved {
		q.logger.Debugf("stale recommendation discarded for session %s", sessionID)
		return
	}

	pubCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	publishEvent(pubCtx, q.publisher, q.logger, domain.NewEvent(domain.EventQuizCompleted, sessionID, map[string]any{
		"product_id":       rec.ProductID,
		"source":           string(rec.Source),
		"confidence_score": rec.ConfidenceScore,
	}))
}

// recommend получает рекомендацию модели; одинаковые наборы ответов обслуживаются одним запросом.
// Общий запрос живёт под собственным таймаутом и не зависит от отмены ctx отдельной сессии,
// каждая сессия ждёт его не дольше своего ctx. Любая ошибка логируется и заменяется fallback.
func (q *QuizUseCase) recommend(ctx context.Context, answers domain.Answers) domain.Recommendation {
	const op = "QuizUseCase.recommend"

	key := AnswersKey(answers)
	ch := q.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.timeout)
		defer cancel()

		return q.fetch(shared, key, answers)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			q.logger.Warnf("recommendation engine error, using fallback: %v", e.Wrap(op, res.Err))
			return FallbackRecommendation(answers, q.catalog.Products())
		}
		return res.Val.(domain.Recommendation)
	case <-ctx.Done():
		// общий запрос ещё идёт; Wait должен дождаться и его
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			<-ch
		}()

		q.logger.Warnf("recommendation engine error, using fallback: %v", e.Wrap(op, ctx.Err()))
		return FallbackRecommendation(answers, q.catalog.Products())
	}
}

func (q *QuizUseCase) fetch(ctx context.Context, key string, answers domain.Answers) (domain.Recommendation, error) {
	cached, err := q.cache.GetRecommendation(ctx, key)
	if err != nil {
		q.logger.Warnf("recommendation cache read failed: %v", err)
	} else if cached != nil {
		rec := *cached
		rec.Source = domain.SourceCache
		return rec, nil
	}

	res, err := q.recommender.Recommend(ctx, NewRecommendReq(answers, q.catalog.Products()))
	if err != nil {
		return domain.Recommendation{}, err
	}

	rec := *res
	rec.Source = domain.SourceModel
	if err := q.cache.SetRecommendation(ctx, key, rec); err != nil {
		q.logger.Warnf("recommendation cache write failed: %v", err)
	}

	return rec, nil
}

func (q *QuizUseCase) view(quiz *domain.Quiz) *QuizView {
	view := &QuizView{
		Status:  quiz.Status(),
		Step:    quiz.Step(),
		Total:   quiz.Total(),
		Answers: quiz.Answers(),
	}

	if view.Total > 0 {
		view.Progress = (view.Step + 1) * 100 / view.Total
	}

	if question, ok := quiz.Current(); ok {
		view.Question = &question
	}

	if rec, ok := quiz.Recommendation(); ok {
		view.Recommendation = &RecommendationView{
			Product:         q.productOrDefault(rec.ProductID),
			Reasoning:       rec.Reasoning,
			ConfidenceScore: rec.ConfidenceScore,
			Source:          rec.Source,
		}
	}

	return view
}

// productOrDefault ищет продукт рекомендации; неизвестный id заменяется первым продуктом каталога.
func (q *QuizUseCase) productOrDefault(id string) domain.Product {
	if p, ok := q.catalog.Product(id); ok {
		return p
	}

	q.logger.Warnf("recommended product %q not in catalog, showing default", id)
	return q.catalog.DefaultProduct()
}

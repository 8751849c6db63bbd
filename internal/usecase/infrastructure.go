package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// RecommenderInfra — внешний сервис рекомендаций (генеративная модель).
type RecommenderInfra interface {
	Recommend(ctx context.Context, req *RecommendReq) (*domain.Recommendation, error)
}

// EventPublisher публикует аналитические события. Ошибки публикации не ломают пользовательские операции.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.Event) error
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, *domain.Event) error { return nil }

type nopCache struct{}

func (nopCache) GetRecommendation(context.Context, string) (*domain.Recommendation, error) {
	return nil, nil
}

func (nopCache) SetRecommendation(context.Context, string, domain.Recommendation) error {
	return nil
}

// publishEvent публикует событие и только логирует ошибку.
func publishEvent(ctx context.Context, publisher EventPublisher, log logger.Logger, event *domain.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warnf("failed to publish %s event: %v", event.Type, err)
	}
}

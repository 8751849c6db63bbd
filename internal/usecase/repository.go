package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// CatalogRepository — неизменяемый каталог, загруженный при старте.
type CatalogRepository interface {
	Products() []domain.Product
	Product(id string) (domain.Product, bool)
	DefaultProduct() domain.Product
	Questions() []domain.Question
	Testimonials() []domain.Testimonial
}

// SessionRepository хранит сессии посетителей. Update выполняет fn под блокировкой сессии.
type SessionRepository interface {
	Create(ctx context.Context) (string, error)
	Touch(ctx context.Context, id string) bool
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) error
	Delete(ctx context.Context, id string) error
}

// RecommendationCache кэширует ответы модели по каноническому набору ответов.
// Промах — (nil, nil).
type RecommendationCache interface {
	GetRecommendation(ctx context.Context, key string) (*domain.Recommendation, error)
	SetRecommendation(ctx context.Context, key string, rec domain.Recommendation) error
}

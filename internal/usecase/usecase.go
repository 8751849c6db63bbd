package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context, req *ListProductsReq) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListTestimonials(ctx context.Context) []domain.Testimonial
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddToCart(ctx context.Context, req *AddToCartReq) (*AddToCartRes, error)
	RemoveFromCart(ctx context.Context, req *RemoveFromCartReq) (*CartView, error)
}

type QuizUC interface {
	StartQuiz(ctx context.Context, sessionID string) (*QuizView, error)
	GetQuiz(ctx context.Context, sessionID string) (*QuizView, error)
	Answer(ctx context.Context, req *AnswerReq) (*QuizView, error)
	Restart(ctx context.Context, sessionID string) (*QuizView, error)
	CloseQuiz(ctx context.Context, sessionID string) error
}

type SessionUC interface {
	Ensure(ctx context.Context, id string) (string, error)
}

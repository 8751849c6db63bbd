package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CartUseCase — корзина посетителя. Без остатков, без уменьшения количества:
// удаление убирает позицию целиком.
type CartUseCase struct {
	sessions  SessionRepository
	catalog   CatalogRepository
	publisher EventPublisher
	logger    logger.Logger
}

func NewCartUC(sessions SessionRepository, catalog CatalogRepository, publisher EventPublisher, logger logger.Logger) *CartUseCase {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &CartUseCase{
		sessions:  sessions,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.GetCart"

	var view *CartView
	err := c.sessions.Update(ctx, sessionID, func(s *domain.Session) error {
		view = NewCartView(s.Cart)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return view, nil
}

// AddToCart добавляет продукт каталога в корзину или увеличивает его количество.
func (c *CartUseCase) AddToCart(ctx context.Context, req *AddToCartReq) (*AddToCartRes, error) {
	const op = "CartUseCase.AddToCart"

	product, ok := c.catalog.Product(req.ProductID)
	if !ok {
		return nil, e.Wrap(op, e.Wrap(req.ProductID, e.ErrProductNotFound))
	}

	var res *AddToCartRes
	err := c.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		item := s.Cart.Add(product)
		res = &AddToCartRes{
			Cart:     NewCartView(s.Cart),
			Item:     NewCartItemView(item),
			OpenCart: true,
		}
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	publishEvent(ctx, c.publisher, c.logger, domain.NewEvent(domain.EventCartItemAdded, req.SessionID, map[string]any{
		"product_id": product.ID,
		"quantity":   res.Item.Quantity,
	}))

	return res, nil
}

// RemoveFromCart удаляет позицию. Отсутствующий продукт — не ошибка.
func (c *CartUseCase) RemoveFromCart(ctx context.Context, req *RemoveFromCartReq) (*CartView, error) {
	const op = "CartUseCase.RemoveFromCart"

	var (
		view    *CartView
		removed bool
	)
	err := c.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		removed = s.Cart.Remove(req.ProductID)
		view = NewCartView(s.Cart)
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if removed {
		publishEvent(ctx, c.publisher, c.logger, domain.NewEvent(domain.EventCartItemRemoved, req.SessionID, map[string]any{
			"product_id": req.ProductID,
		}))
	}

	return view, nil
}

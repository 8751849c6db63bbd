package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
)

// CatalogUseCase отдаёт каталог, фильтрацию и отзывы.
type CatalogUseCase struct {
	catalog CatalogRepository
}

func NewCatalogUC(catalog CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog}
}

// ListProducts фильтрует каталог по строке поиска и категории.
func (c *CatalogUseCase) ListProducts(_ context.Context, req *ListProductsReq) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	filter, err := domain.ParseCategoryFilter(req.Category)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return domain.FilterProducts(c.catalog.Products(), req.Query, filter), nil
}

func (c *CatalogUseCase) GetProduct(_ context.Context, id string) (domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	product, ok := c.catalog.Product(id)
	if !ok {
		return domain.Product{}, e.Wrap(op, e.Wrap(id, e.ErrProductNotFound))
	}

	return product, nil
}

func (c *CatalogUseCase) ListTestimonials(_ context.Context) []domain.Testimonial {
	return c.catalog.Testimonials()
}

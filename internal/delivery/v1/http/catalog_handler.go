package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список продуктов
//	@Description	Фильтрует каталог по строке поиска (название или слоган) и категории
//	@Tags			products
//	@Produce		json
//	@Param			q			query		string	false	"Строка поиска"
//	@Param			category	query		string	false	"all | daily | fleet | ev"
//	@Success		200			{array}		ProductResponse
//	@Failure		400			{object}	ErrorResponse	"Неизвестная категория"
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	products, err := h.catalogUsecase.ListProducts(r.Context(), usecase.NewListProductsReq(q.Get("q"), q.Get("category")))
	if err != nil {
		h.logger.Warnf("%d %s", http.StatusBadRequest, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductsResponse(products))
}

// getProduct
//
//	@Summary	Продукт по id
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Id продукта"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// listTestimonials
//
//	@Summary	Отзывы клиентов
//	@Tags		testimonials
//	@Produce	json
//	@Success	200	{array}	TestimonialResponse
//	@Router		/testimonials [get]
func (h *CatalogHandler) listTestimonials(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, toTestimonialsResponse(h.catalogUsecase.ListTestimonials(r.Context())))
}

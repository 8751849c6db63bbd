package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// getCart
//
//	@Summary	Корзина текущей сессии
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.GetCart(r.Context(), sessionID(r))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

// addItem
//
//	@Summary		Добавить продукт в корзину
//	@Description	Повторное добавление увеличивает количество на 1
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AddToCartRequest	true	"Продукт"
//	@Success		200		{object}	AddToCartResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse	"Продукта нет в каталоге"
//	@Router			/cart/items [post]
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		WriteError(w, e.Wrap("product_id", e.ErrMissingFields))
		return
	}

	res, err := h.cartUsecase.AddToCart(r.Context(), usecase.NewAddToCartReq(sessionID(r), productID))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, AddToCartResponse{
		Cart:     toCartResponse(res.Cart),
		Item:     toCartItemResponse(res.Item),
		OpenCart: res.OpenCart,
	})
}

// removeItem
//
//	@Summary		Удалить позицию из корзины
//	@Description	Удаляет позицию целиком; отсутствующий продукт не ошибка
//	@Tags			cart
//	@Produce		json
//	@Param			id	path		string	true	"Id продукта"
//	@Success		200	{object}	CartResponse
//	@Router			/cart/items/{id} [delete]
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.RemoveFromCart(r.Context(), usecase.NewRemoveFromCartReq(sessionID(r), chi.URLParam(r, "id")))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCartResponse(cart))
}

package usecase

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// CATALOG USECASE

// ListProductsReq — строка поиска и селектор категории ("all" или категория каталога).
type ListProductsReq struct {
	Query    string
	Category string
}

// CART USECASE

type AddToCartReq struct {
	SessionID string
	ProductID string
}

type RemoveFromCartReq struct {
	SessionID string
	ProductID string
}

// CartView — снимок корзины с производными Count и Subtotal.
type CartView struct {
	Items    []CartItemView
	Count    int
	Subtotal decimal.Decimal
}

type CartItemView struct {
	Product   domain.Product
	Quantity  int
	LineTotal decimal.Decimal
}

// AddToCartRes — корзина после добавления. OpenCart подсказывает клиенту открыть корзину.
type AddToCartRes struct {
	Cart     *CartView
	Item     CartItemView
	OpenCart bool
}

// QUIZ USECASE

type AnswerReq struct {
	SessionID string
	Value     string
}

// QuizView — состояние квиза для отображения.
type QuizView struct {
	Status         domain.QuizStatus
	Step           int
	Total          int
	Progress       int // процент, (step+1)/total*100
	Question       *domain.Question
	Answers        domain.Answers
	Recommendation *RecommendationView
}

// RecommendationView — рекомендация с уже найденным в каталоге продуктом.
type RecommendationView struct {
	Product         domain.Product
	Reasoning       string
	ConfidenceScore float64
	Source          domain.RecommendationSource
}

// INFRASTRUCTURE

// RecommendReq — запрос к сервису рекомендаций.
type RecommendReq struct {
	Answers  domain.Answers
	Products []domain.Product
}

// MAPPERS

func NewCartView(cart *domain.Cart) *CartView {
	items := cart.Items()
	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, NewCartItemView(item))
	}

	return &CartView{
		Items:    views,
		Count:    cart.Count(),
		Subtotal: cart.Subtotal(),
	}
}

func NewCartItemView(item domain.CartItem) CartItemView {
	return CartItemView{
		Product:   item.Product,
		Quantity:  item.Quantity,
		LineTotal: item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

func NewListProductsReq(query string, category string) *ListProductsReq {
	return &ListProductsReq{Query: query, Category: category}
}

func NewAddToCartReq(sessionID string, productID string) *AddToCartReq {
	return &AddToCartReq{SessionID: sessionID, ProductID: productID}
}

func NewRemoveFromCartReq(sessionID string, productID string) *RemoveFromCartReq {
	return &RemoveFromCartReq{SessionID: sessionID, ProductID: productID}
}

func NewAnswerReq(sessionID string, value string) *AnswerReq {
	return &AnswerReq{SessionID: sessionID, Value: value}
}

func NewRecommendReq(answers domain.Answers, products []domain.Product) *RecommendReq {
	return &RecommendReq{Answers: answers, Products: products}
}

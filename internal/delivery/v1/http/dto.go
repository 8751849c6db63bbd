package http

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
)

// Цены отдаются строками с двумя знаками, чтобы не терять точность decimal.

type ProductResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline"`
	ImageURL     string   `json:"image_url"`
	Badges       []string `json:"badges"`
	Category     string   `json:"category"`
	Price        string   `json:"price"`
	MonthlyPrice string   `json:"monthly_price"`
	Rating       int      `json:"rating"`
	ReviewCount  int      `json:"review_count"`
}

type TestimonialResponse struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Role   string `json:"role"`
	Quote  string `json:"quote"`
	Rating int    `json:"rating"`
}

type CartItemResponse struct {
	Product   ProductResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"line_total"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Count    int                `json:"count"`
	Subtotal string             `json:"subtotal"`
}

type AddToCartResponse struct {
	Cart     CartResponse     `json:"cart"`
	Item     CartItemResponse `json:"item"`
	OpenCart bool             `json:"open_cart"`
}

type OptionResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type QuestionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"question"`
	Options []OptionResponse `json:"options"`
}

type RecommendationResponse struct {
	Product         ProductResponse `json:"product"`
	Reasoning       string          `json:"reasoning"`
	ConfidenceScore float64         `json:"confidence_score"`
	Source          string          `json:"source"`
}

type QuizResponse struct {
	Status         string                  `json:"status"`
	Step           int                     `json:"step"`
	Total          int                     `json:"total"`
	Progress       int                     `json:"progress"`
	Question       *QuestionResponse       `json:"question,omitempty"`
	Answers        map[string]string       `json:"answers"`
	Recommendation *RecommendationResponse `json:"recommendation,omitempty"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
}

type AnswerRequest struct {
	Value string `json:"value"`
}

func toProductResponse(p domain.Product) ProductResponse {
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}

	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Tagline:      p.Tagline,
		ImageURL:     p.ImageURL,
		Badges:       badges,
		Category:     string(p.Category),
		Price:        p.Price.StringFixed(2),
		MonthlyPrice: p.MonthlyPrice.StringFixed(2),
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
	}
}

func toProductsResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}

	return res
}

func toTestimonialsResponse(testimonials []domain.Testimonial) []TestimonialResponse {
	res := make([]TestimonialResponse, 0, len(testimonials))
	for _, t := range testimonials {
		res = append(res, TestimonialResponse{
			ID:     t.ID,
			Author: t.Author,
			Role:   t.Role,
			Quote:  t.Quote,
			Rating: t.Rating,
		})
	}

	return res
}

func toCartItemResponse(item usecase.CartItemView) CartItemResponse {
	return CartItemResponse{
		Product:   toProductResponse(item.Product),
		Quantity:  item.Quantity,
		LineTotal: item.LineTotal.StringFixed(2),
	}
}

func toCartResponse(cart *usecase.CartView) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, toCartItemResponse(item))
	}

	return CartResponse{
		Items:    items,
		Count:    cart.Count,
		Subtotal: cart.Subtotal.StringFixed(2),
	}
}

func toQuizResponse(view *usecase.QuizView) QuizResponse {
	res := QuizResponse{
		Status:   string(view.Status),
		Step:     view.Step,
		Total:    view.Total,
		Progress: view.Progress,
		Answers:  map[string]string(view.Answers),
	}
	if res.Answers == nil {
		res.Answers = map[string]string{}
	}

	if q := view.Question; q != nil {
		options := make([]OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, OptionResponse{Label: o.Label, Value: o.Value})
		}
		res.Question = &QuestionResponse{ID: q.ID, Text: q.Text, Options: options}
	}

	if rec := view.Recommendation; rec != nil {
		res.Recommendation = &RecommendationResponse{
			Product:         toProductResponse(rec.Product),
			Reasoning:       rec.Reasoning,
			ConfidenceScore: rec.ConfidenceScore,
			Source:          string(rec.Source),
		}
	}

	return res
}

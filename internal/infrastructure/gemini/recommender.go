package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"google.golang.org/genai"
)

// contentGenerator — часть genai.Models, которой пользуется рекомендатель.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Recommender — клиент Gemini, подбирающий продукт по ответам квиза.
// Без ключа API не делает сетевых вызовов и сразу возвращает e.ErrRecommenderNotConfigured.
type Recommender struct {
	models contentGenerator
	model  string
	logger logger.Logger
}

// NewRecommender создаёт клиента. Ошибка создания клиента не фатальна: рекомендатель
// остаётся ненастроенным, и квиз работает на локальной логике.
func NewRecommender(ctx context.Context, cfg *cfg.GenAICfg, logger logger.Logger) *Recommender {
	r := &Recommender{model: cfg.Model, logger: logger}
	if !cfg.Configured() {
		return r
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Warnf("failed to create GenAI client, proceeding with local logic: %v", err)
		return r
	}

	r.models = client.Models
	return r
}

func newRecommenderWithGenerator(models contentGenerator, model string, logger logger.Logger) *Recommender {
	return &Recommender{models: models, model: model, logger: logger}
}

// recommendationModel — JSON-ответ модели по схеме responseSchema.
type recommendationModel struct {
	RecommendedProductID string  `json:"recommendedProductId"`
	Reasoning            string  `json:"reasoning"`
	ConfidenceScore      float64 `json:"confidenceScore"`
}

// Recommend выполняет один запрос к модели, без повторов.
func (r *Recommender) Recommend(ctx context.Context, req *usecase.RecommendReq) (*domain.Recommendation, error) {
	const op = "gemini.Recommender.Recommend"

	if r.models == nil {
		return nil, e.Wrap(op, e.ErrRecommenderNotConfigured)
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res, err := r.models.GenerateContent(ctx, r.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(req.Products),
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	rec, err := parseResponse(res)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	r.logger.Debugf("model recommended %s (score %.0f)", rec.ProductID, rec.ConfidenceScore)
	return rec, nil
}

func buildPrompt(req *usecase.RecommendReq) (string, error) {
	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(req.Products))
	for _, p := range req.Products {
		names = append(names, fmt.Sprintf("%s (id: %s)", p.Name, p.ID))
	}

	return fmt.Sprintf(
		"Based on these user responses for a vehicle safety system quiz: %s.\n"+
			"Recommend which Astrateq product (%s) fits them best and explain why in 2 short sentences.\n"+
			"Also provide a confidence score from 0-100.",
		answers,
		strings.Join(names, ", "),
	), nil
}

func responseSchema(products []domain.Product) *genai.Schema {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendedProductId": {
				Type:        genai.TypeString,
				Description: "One of: " + strings.Join(ids, ", "),
			},
			"reasoning":       {Type: genai.TypeString},
			"confidenceScore": {Type: genai.TypeNumber},
		},
		Required: []string{"recommendedProductId", "reasoning", "confidenceScore"},
	}
}

// parseResponse разбирает JSON из ответа модели. Id продукта не сверяется с каталогом,
// это делает слой отображения.
func parseResponse(res *genai.GenerateContentResponse) (*domain.Recommendation, error) {
	if res == nil {
		return nil, e.ErrEmptyRecommendation
	}

	text := stripCodeFence(res.Text())
	if text == "" {
		return nil, e.ErrEmptyRecommendation
	}

	var model recommendationModel
	if err := json.Unmarshal([]byte(text), &model); err != nil {
		return nil, e.Wrap(err.Error(), e.ErrMalformedRecommendation)
	}

	if strings.TrimSpace(model.RecommendedProductID) == "" {
		return nil, e.Wrap("recommendedProductId is empty", e.ErrMalformedRecommendation)
	}

	return &domain.Recommendation{
		ProductID:       strings.TrimSpace(model.RecommendedProductID),
		Reasoning:       model.Reasoning,
		ConfidenceScore: model.ConfidenceScore,
		Source:          domain.SourceModel,
	}, nil
}

// stripCodeFence убирает обёртку ```json ... ```, которую модель иногда добавляет.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}

package domain

// RecommendationSource показывает, откуда взялась рекомендация.
type RecommendationSource string

const (
	SourceModel    RecommendationSource = "model"
	SourceCache    RecommendationSource = "cache"
	SourceFallback RecommendationSource = "fallback"
)

// Recommendation — результат квиза. ConfidenceScore по контракту модели 0-100, но не проверяется.
type Recommendation struct {
	ProductID       string
	Reasoning       string
	ConfidenceScore float64
	Source          RecommendationSource
}

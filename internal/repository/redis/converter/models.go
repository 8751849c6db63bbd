package converter

// RecommendationRedisModel — рекомендация модели в кэше.
type RecommendationRedisModel struct {
	ProductID       string  `json:"product_id"`
	Reasoning       string  `json:"reasoning"`
	ConfidenceScore float64 `json:"confidence_score"`
}

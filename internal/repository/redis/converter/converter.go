package converter

import "github.com/DRSN-tech/storefront/internal/domain"

func ToRedisModel(rec *domain.Recommendation) *RecommendationRedisModel {
	return &RecommendationRedisModel{
		ProductID:       rec.ProductID,
		Reasoning:       rec.Reasoning,
		ConfidenceScore: rec.ConfidenceScore,
	}
}

// ToDomain не восстанавливает Source: его выставляет вызывающая сторона.
func ToDomain(model *RecommendationRedisModel) *domain.Recommendation {
	return &domain.Recommendation{
		ProductID:       model.ProductID,
		Reasoning:       model.Reasoning,
		ConfidenceScore: model.ConfidenceScore,
	}
}

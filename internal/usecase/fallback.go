package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
)

const FallbackConfidenceScore = 98

// fallbackReasons — шаблоны объяснений по категории, %s заменяется названием продукта.
var fallbackReasons = map[domain.Category]string{
	domain.CategoryFleet: "%s is specifically engineered for business logistics and enterprise fleet health monitoring.",
	domain.CategoryEV:    "%s provides specialized telemetry for range optimization and thermal safety critical for electric vehicles.",
	domain.CategoryDaily: "%s offers the most versatile personal safety features for daily commuting and high-accuracy accident prevention.",
}

// FallbackRecommendation — локальная детерминированная рекомендация по ответу на driver_type.
// Остальные ответы не учитываются. Продукт берётся из каталога: первый в категории
// fleet, ev или daily, а если категория пуста, то первый продукт каталога.
func FallbackRecommendation(answers domain.Answers, products []domain.Product) domain.Recommendation {
	category := domain.CategoryDaily
	switch answers[domain.DriverTypeQuestionID] {
	case string(domain.CategoryFleet):
		category = domain.CategoryFleet
	case string(domain.CategoryEV):
		category = domain.CategoryEV
	}

	rec := domain.Recommendation{
		ConfidenceScore: FallbackConfidenceScore,
		Source:          domain.SourceFallback,
	}

	product, ok := firstInCategory(products, category)
	if !ok {
		if len(products) == 0 {
			return rec
		}
		product = products[0]
	}

	rec.ProductID = product.ID
	rec.Reasoning = fmt.Sprintf(fallbackReasons[category], product.Name)
	return rec
}

func firstInCategory(products []domain.Product, category domain.Category) (domain.Product, bool) {
	for _, p := range products {
		if p.Category == category {
			return p, true
		}
	}

	return domain.Product{}, false
}

// AnswersKey — канонический ключ набора ответов (сортировка по id вопроса).
func AnswersKey(answers domain.Answers) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(answers[k])
	}

	return b.String()
}

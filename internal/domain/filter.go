package domain

import "strings"

// FilterProducts возвращает продукты, у которых name или tagline содержит query
// (без учёта регистра) и категория подходит под filter. Порядок каталога сохраняется.
func FilterProducts(products []Product, query string, filter Category) []Product {
	needle := strings.ToLower(query)

	result := make([]Product, 0, len(products))
	for _, p := range products {
		if !p.Category.Matches(filter) {
			continue
		}

		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Tagline), needle) {
			continue
		}

		result = append(result, p)
	}

	return result
}

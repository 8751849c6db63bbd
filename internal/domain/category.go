package domain

import (
	"strings"

	"github.com/DRSN-tech/storefront/pkg/e"
)

// Category описывает категорию продукта
type Category string

const (
	CategoryDaily Category = "daily"
	CategoryEV    Category = "ev"
	CategoryFleet Category = "fleet"

	// CategoryAll — селектор фильтра, под который подходит любая категория.
	CategoryAll Category = "all"
)

// Valid сообщает, является ли значение одной из категорий каталога.
func (c Category) Valid() bool {
	switch c {
	case CategoryDaily, CategoryEV, CategoryFleet:
		return true
	default:
		return false
	}
}

// Matches сообщает, проходит ли категория c через селектор filter.
func (c Category) Matches(filter Category) bool {
	return filter == CategoryAll || c == filter
}

// ParseCategory разбирает категорию продукта из каталога.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", e.Wrap(s, e.ErrInvalidCategory)
	}

	return c, nil
}

// ParseCategoryFilter разбирает селектор фильтра. Пустая строка означает "all".
func ParseCategoryFilter(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(CategoryAll) {
		return CategoryAll, nil
	}

	return ParseCategory(s)
}

// Package catalog загружает неизменяемые справочные данные витрины: продукты, отзывы и вопросы квиза.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog — каталог, загруженный при старте. После загрузки не меняется,
// поэтому безопасен для конкурентного чтения.
type Catalog struct {
	products     []domain.Product
	byID         map[string]int
	testimonials []domain.Testimonial
	questions    []domain.Question
}

// Load читает каталог из path. Пустой path — встроенный каталог.
func Load(path string) (*Catalog, error) {
	const op = "catalog.Load"

	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		data = raw
	}

	c, err := Parse(data)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c, nil
}

// Parse разбирает и валидирует YAML каталога.
func Parse(data []byte) (*Catalog, error) {
	var file fileModel
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	products, byID, err := toProducts(file.Products)
	if err != nil {
		return nil, err
	}

	questions, err := toQuestions(file.Questions)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		products:     products,
		byID:         byID,
		testimonials: toTestimonials(file.Testimonials),
		questions:    questions,
	}, nil
}

// Products возвращает копию списка продуктов в порядке каталога.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Product(id string) (domain.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}

	return c.products[idx], true
}

// DefaultProduct — первый продукт каталога, показывается вместо неизвестного id.
func (c *Catalog) DefaultProduct() domain.Product {
	return c.products[0]
}

func (c *Catalog) Questions() []domain.Question {
	out := make([]domain.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

func (c *Catalog) Testimonials() []domain.Testimonial {
	out := make([]domain.Testimonial, len(c.testimonials))
	copy(out, c.testimonials)
	return out
}

func toProducts(models []productModel) ([]domain.Product, map[string]int, error) {
	if len(models) == 0 {
		return nil, nil, e.ErrCatalogEmpty
	}

	products := make([]domain.Product, 0, len(models))
	byID := make(map[string]int, len(models))
	for _, m := range models {
		id := strings.TrimSpace(m.ID)
		if id == "" || strings.TrimSpace(m.Name) == "" {
			return nil, nil, e.Wrap(fmt.Sprintf("product %q", m.ID), e.ErrMissingFields)
		}
		if _, dup := byID[id]; dup {
			return nil, nil, e.Wrap(id, e.ErrDuplicateProductID)
		}

		category, err := domain.ParseCategory(m.Category)
		if err != nil {
			return nil, nil, e.Wrap(id, err)
		}

		price, err := parsePrice(m.Price)
		if err != nil {
			return nil, nil, e.Wrap(id+": price", err)
		}

		monthly, err := parsePrice(m.MonthlyPrice)
		if err != nil {
			return nil, nil, e.Wrap(id+": monthly_price", err)
		}

		byID[id] = len(products)
		products = append(products, domain.Product{
			ID:           id,
			Name:         m.Name,
			Tagline:      m.Tagline,
			ImageURL:     m.ImageURL,
			Badges:       m.Badges,
			Category:     category,
			Price:        price,
			MonthlyPrice: monthly,
			Rating:       m.Rating,
			ReviewCount:  m.ReviewCount,
		})
	}

	return products, byID, nil
}

func toQuestions(models []questionModel) ([]domain.Question, error) {
	if len(models) == 0 {
		return nil, e.ErrNoQuestions
	}

	seen := make(map[string]struct{}, len(models))
	questions := make([]domain.Question, 0, len(models))
	for _, m := range models {
		if strings.TrimSpace(m.ID) == "" {
			return nil, e.Wrap("question", e.ErrMissingFields)
		}
		if _, dup := seen[m.ID]; dup {
			return nil, e.Wrap(m.ID, e.ErrDuplicateQuestionID)
		}
		seen[m.ID] = struct{}{}

		if len(m.Options) == 0 {
			return nil, e.Wrap(m.ID, e.ErrQuestionNoOptions)
		}

		options := make([]domain.Option, 0, len(m.Options))
		for _, o := range m.Options {
			options = append(options, domain.Option{Label: o.Label, Value: o.Value})
		}

		questions = append(questions, domain.Question{ID: m.ID, Text: m.Question, Options: options})
	}

	return questions, nil
}

func toTestimonials(models []testimonialModel) []domain.Testimonial {
	out := make([]domain.Testimonial, 0, len(models))
	for _, m := range models {
		out = append(out, domain.Testimonial{
			ID:     m.ID,
			Author: m.Author,
			Role:   m.Role,
			Quote:  m.Quote,
			Rating: m.Rating,
		})
	}

	return out
}

// parsePrice разбирает неотрицательную цену. Пустая строка — ноль.
func parsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	if d.IsNegative() {
		return decimal.Zero, e.ErrInvalidPrice
	}

	return d, nil
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	products := c.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "astra-ai-coach", products[0].ID)
	assert.Equal(t, domain.CategoryDaily, products[0].Category)
	assert.True(t, decimal.RequireFromString("179").Equal(products[0].Price))
	assert.Equal(t, []string{"BESTSELLER", "RECOMMENDED FOR YOU"}, products[0].Badges)

	fleet, ok := c.Product("fleetguard-pro")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryFleet, fleet.Category)

	_, ok = c.Product("nope")
	assert.False(t, ok)

	assert.Equal(t, "astra-ai-coach", c.DefaultProduct().ID)

	questions := c.Questions()
	require.Len(t, questions, 3)
	assert.Equal(t, domain.DriverTypeQuestionID, questions[0].ID)
	assert.True(t, questions[0].HasOption("fleet"))

	assert.Len(t, c.Testimonials(), 2)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`
products:
  - {id: one, name: One, price: "10.50", category: ev}
questions:
  - id: driver_type
    options: [{label: EV, value: ev}]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Products(), 1)
	assert.True(t, decimal.RequireFromString("10.5").Equal(c.DefaultProduct().Price))
	assert.Empty(t, c.Testimonials())
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "no products",
			yaml: "questions: [{id: q, options: [{value: a}]}]",
			err:  e.ErrCatalogEmpty,
		},
		{
			name: "duplicate product",
			yaml: `
products: [{id: a, name: A, category: ev}, {id: a, name: B, category: ev}]
questions: [{id: q, options: [{value: a}]}]`,
			err: e.ErrDuplicateProductID,
		},
		{
			name: "bad category",
			yaml: `
products: [{id: a, name: A, category: boats}]
questions: [{id: q, options: [{value: a}]}]`,
			err: e.ErrInvalidCategory,
		},
		{
			name: "negative price",
			yaml: `
products: [{id: a, name: A, category: ev, price: "-1"}]
questions: [{id: q, options: [{value: a}]}]`,
			err: e.ErrInvalidPrice,
		},
		{
			name: "no questions",
			yaml: "products: [{id: a, name: A, category: ev}]",
			err:  e.ErrNoQuestions,
		},
		{
			name: "question without options",
			yaml: `
products: [{id: a, name: A, category: ev}]
questions: [{id: q}]`,
			err: e.ErrQuestionNoOptions,
		},
		{
			name: "duplicate question",
			yaml: `
products: [{id: a, name: A, category: ev}]
questions: [{id: q, options: [{value: a}]}, {id: q, options: [{value: b}]}]`,
			err: e.ErrDuplicateQuestionID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

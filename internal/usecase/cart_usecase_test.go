package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := &fakePublisher{}
	uc := NewCartUC(f.sessions, f.catalog, pub, f.log)
	sid := f.newSession(t)

	t.Run("empty cart", func(t *testing.T) {
		cart, err := uc.GetCart(ctx, sid)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
		assert.Equal(t, 0, cart.Count)
		assert.True(t, cart.Subtotal.IsZero())
	})

	t.Run("add same product twice", func(t *testing.T) {
		res, err := uc.AddToCart(ctx, NewAddToCartReq(sid, ProductDailyCoach))
		require.NoError(t, err)
		assert.True(t, res.OpenCart)

		res, err = uc.AddToCart(ctx, NewAddToCartReq(sid, ProductDailyCoach))
		require.NoError(t, err)

		require.Len(t, res.Cart.Items, 1)
		assert.Equal(t, 2, res.Item.Quantity)
		assert.Equal(t, 2, res.Cart.Count)
		assert.True(t, decimal.RequireFromString("358").Equal(res.Cart.Subtotal))
		assert.True(t, decimal.RequireFromString("358").Equal(res.Item.LineTotal))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := uc.AddToCart(ctx, NewAddToCartReq(sid, "flux-capacitor"))
		require.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("remove absent is noop", func(t *testing.T) {
		cart, err := uc.RemoveFromCart(ctx, NewRemoveFromCartReq(sid, ProductFleetGuard))
		require.NoError(t, err)
		assert.Equal(t, 2, cart.Count)
	})

	t.Run("remove deletes line", func(t *testing.T) {
		_, err := uc.AddToCart(ctx, NewAddToCartReq(sid, ProductEVBattery))
		require.NoError(t, err)

		cart, err := uc.RemoveFromCart(ctx, NewRemoveFromCartReq(sid, ProductDailyCoach))
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, ProductEVBattery, cart.Items[0].Product.ID)
		assert.Equal(t, 1, cart.Count)
		assert.True(t, decimal.RequireFromString("200").Equal(cart.Subtotal))
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := uc.GetCart(ctx, "missing")
		require.ErrorIs(t, err, e.ErrSessionNotFound)
	})

	assert.Equal(t, []domain.EventType{
		domain.EventCartItemAdded,
		domain.EventCartItemAdded,
		domain.EventCartItemAdded,
		domain.EventCartItemRemoved,
	}, pub.Types())
}

func TestCatalogUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewCatalogUC(f.catalog)

	all, err := uc.ListProducts(ctx, NewListProductsReq("", "all"))
	require.NoError(t, err)
	assert.Equal(t, f.catalog.Products(), all)

	fleet, err := uc.ListProducts(ctx, NewListProductsReq("", "fleet"))
	require.NoError(t, err)
	require.Len(t, fleet, 1)
	assert.Equal(t, domain.CategoryFleet, fleet[0].Category)

	found, err := uc.ListProducts(ctx, NewListProductsReq("BATTERY", ""))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ProductEVBattery, found[0].ID)

	_, err = uc.ListProducts(ctx, NewListProductsReq("", "boats"))
	require.ErrorIs(t, err, e.ErrInvalidCategory)

	p, err := uc.GetProduct(ctx, ProductFleetGuard)
	require.NoError(t, err)
	assert.Equal(t, "FleetGuard AI Pro", p.Name)

	_, err = uc.GetProduct(ctx, "nope")
	require.ErrorIs(t, err, e.ErrProductNotFound)

	assert.Len(t, uc.ListTestimonials(ctx), 2)
}

func TestSessionUseCaseEnsure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewSessionUC(f.sessions, f.log)

	id, err := uc.Ensure(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	same, err := uc.Ensure(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, same)

	other, err := uc.Ensure(ctx, "forged-id")
	require.NoError(t, err)
	assert.NotEqual(t, "forged-id", other)
}

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/waatech/merch-backend/models"
	"github.com/waatech/merch-backend/repository"
	"github.com/waatech/merch-backend/services"
)

func mustProduct(t *testing.T, id string) models.Product {
	t.Helper()
	p, ok := models.GetProductByID(id)
	assert.True(t, ok, "catalog product %s missing", id)
	return p
}

func newTestStore(t *testing.T) (*services.CartStore, *repository.MemoryCartPersistence) {
	t.Helper()
	persist := repository.NewMemoryCartPersistence()
	logger, _ := zap.NewDevelopment()
	return services.NewCartStore(context.Background(), persist, logger), persist
}

func TestAddItem_MergesSameProductAndSize(t *testing.T) {
	store, _ := newTestStore(t)
	tee := mustProduct(t, "waa-tshirt-black")

	store.AddItem(context.Background(), tee, "M")
	store.AddItem(context.Background(), tee, "M")

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "M", items[0].Size)
}

func TestAddItem_DifferentSizesAreDistinctLines(t *testing.T) {
	store, _ := newTestStore(t)
	tee := mustProduct(t, "waa-tshirt-black")

	store.AddItem(context.Background(), tee, "M")
	store.AddItem(context.Background(), tee, "L")

	assert.Len(t, store.Items(), 2)
}

func TestAddItem_OpensCart(t *testing.T) {
	store, _ := newTestStore(t)
	assert.False(t, store.IsOpen())

	store.AddItem(context.Background(), mustProduct(t, "waa-cap"), "")
	assert.True(t, store.IsOpen())
}

func TestUpdateQuantity_FloorRemovesLine(t *testing.T) {
	store, _ := newTestStore(t)
	tee := mustProduct(t, "waa-tshirt-black")
	ctx := context.Background()

	store.AddItem(ctx, tee, "M")
	store.UpdateQuantity(ctx, tee.ID, 0, "M")
	assert.Empty(t, store.Items())

	store.AddItem(ctx, tee, "M")
	store.UpdateQuantity(ctx, tee.ID, -5, "M")
	assert.Empty(t, store.Items())
}

func TestUpdateQuantity_AbsoluteSet(t *testing.T) {
	store, _ := newTestStore(t)
	tee := mustProduct(t, "waa-tshirt-black")
	ctx := context.Background()

	store.AddItem(ctx, tee, "M")
	store.UpdateQuantity(ctx, tee.ID, 7, "M")

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	store, _ := newTestStore(t)
	tee := mustProduct(t, "waa-tshirt-black")
	ctx := context.Background()

	store.AddItem(ctx, tee, "M")
	store.RemoveItem(ctx, "waa-hoodie-black", "")
	store.RemoveItem(ctx, tee.ID, "L") // same product, other size

	assert.Len(t, store.Items(), 1)
}

func TestTotals(t *testing.T) {
	store, _ := newTestStore(t)
	tee := mustProduct(t, "waa-tshirt-black")
	stickers := mustProduct(t, "waa-sticker-pack")
	ctx := context.Background()

	store.AddItem(ctx, tee, "M")
	store.AddItem(ctx, tee, "M")
	store.AddItem(ctx, stickers, "")

	assert.Equal(t, 3, store.TotalItems())
	assert.Equal(t, 2*2500+800, store.TotalPrice())
}

func TestClearCart_EmptiesButKeepsPanelOpen(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.AddItem(ctx, mustProduct(t, "waa-beanie"), "")
	assert.True(t, store.IsOpen())

	store.ClearCart(ctx)
	assert.Empty(t, store.Items())
	assert.True(t, store.IsOpen())
	assert.Equal(t, 0, store.TotalPrice())
}

func TestToggleCart(t *testing.T) {
	store, _ := newTestStore(t)

	store.ToggleCart()
	assert.True(t, store.IsOpen())
	store.ToggleCart()
	assert.False(t, store.IsOpen())
	store.OpenCart()
	assert.True(t, store.IsOpen())
	store.CloseCart()
	assert.False(t, store.IsOpen())
}

func TestPersistenceRoundTrip(t *testing.T) {
	persist := repository.NewMemoryCartPersistence()
	logger, _ := zap.NewDevelopment()
	ctx := context.Background()

	store := services.NewCartStore(ctx, persist, logger)
	tee := mustProduct(t, "waa-tshirt-black")
	stickers := mustProduct(t, "waa-sticker-pack")

	store.AddItem(ctx, tee, "M")
	store.AddItem(ctx, tee, "M")
	store.AddItem(ctx, stickers, "")
	store.OpenCart()

	// A fresh store over the same persistence sees identical lines,
	// and the panel flag always resets to closed.
	reloaded := services.NewCartStore(ctx, persist, logger)
	assert.Equal(t, store.Items(), reloaded.Items())
	assert.False(t, reloaded.IsOpen())
	assert.Equal(t, store.TotalPrice(), reloaded.TotalPrice())
}

package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"
	"lapak/internal/storage"
)

func newCartFixture() (*services.CartService, storage.Adapter) {
	store := storage.NewMemoryAdapter()
	cart := services.NewCartService(
		repositories.NewCartRepository(store),
		repositories.NewCatalogRepository(store),
		&sync.Mutex{},
	)
	return cart, store
}

func TestCartService_AddAccumulates(t *testing.T) {
	cart, _ := newCartFixture()

	cart.Add(1, 3, 2)
	lines := cart.Add(1, 3, 1)

	assert.Equal(t, []models.CartLine{{CategoryID: 1, ItemID: 3, Quantity: 3}}, lines)

	// A different pairing gets its own line, in insertion order.
	lines = cart.Add(2, 5, 1)
	assert.Len(t, lines, 2)
	assert.Equal(t, models.CartLine{CategoryID: 2, ItemID: 5, Quantity: 1}, lines[1])
}

func TestCartService_AddCoercesQuantity(t *testing.T) {
	cart, _ := newCartFixture()

	cart.Add(1, 1, 0)
	cart.Add(1, 1, -7)
	lines := cart.Lines()

	assert.Equal(t, []models.CartLine{{CategoryID: 1, ItemID: 1, Quantity: 2}}, lines)
}

func TestCartService_DecrementRemovesAtOne(t *testing.T) {
	cart, _ := newCartFixture()

	cart.Add(1, 3, 2)
	cart.Decrement(1, 3)
	assert.Equal(t, 1, cart.Lines()[0].Quantity)

	lines := cart.Decrement(1, 3)
	assert.Empty(t, lines)
	assert.Empty(t, cart.Lines())
}

func TestCartService_RemoveMissingIsNoOp(t *testing.T) {
	cart, _ := newCartFixture()

	cart.Add(1, 3, 2)
	lines := cart.Remove(9, 9)
	assert.Len(t, lines, 1)

	lines = cart.Remove(1, 3)
	assert.Empty(t, lines)
}

func TestCartService_SummarySkipsStaleLines(t *testing.T) {
	cart, store := newCartFixture()

	store.Write(storage.KeyCategories, []models.Category{
		{ID: 1, Name: "Books", Items: []models.Item{
			{ID: 3, Name: "Novel", Price: "12.50"},
		}},
	})

	cart.Add(1, 3, 2)  // resolvable
	cart.Add(1, 99, 5) // item gone
	cart.Add(4, 1, 1)  // category gone

	summary := cart.Summary()
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "25.00", summary.Total)
}

func TestCartService_SummaryEmptyCart(t *testing.T) {
	cart, _ := newCartFixture()

	summary := cart.Summary()
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, "0.00", summary.Total)
}

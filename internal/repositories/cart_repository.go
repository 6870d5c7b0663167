package repositories

import (
	"lapak/internal/models"
	"lapak/internal/storage"
)

// CartRepository defines access to the cart record.
type CartRepository interface {
	Lines() []models.CartLine
	Save(lines []models.CartLine)
}

// RecordCartRepository persists the cart through the storage adapter.
type RecordCartRepository struct {
	store storage.Adapter
}

// NewCartRepository creates a new RecordCartRepository.
func NewCartRepository(store storage.Adapter) *RecordCartRepository {
	return &RecordCartRepository{store: store}
}

// Lines returns the cart contents, empty when no cart has been persisted.
func (r *RecordCartRepository) Lines() []models.CartLine {
	var lines []models.CartLine
	r.store.Read(storage.KeyCart, &lines)
	return lines
}

// Save overwrites the persisted cart.
func (r *RecordCartRepository) Save(lines []models.CartLine) {
	r.store.Write(storage.KeyCart, lines)
}

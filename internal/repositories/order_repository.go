package repositories

import (
	"lapak/internal/models"
	"lapak/internal/storage"
)

// OrderRepository defines access to the global order ledger.
type OrderRepository interface {
	Ledger() []models.Order
	Save(orders []models.Order)
}

// RecordOrderRepository persists the ledger through the storage adapter.
type RecordOrderRepository struct {
	store storage.Adapter
}

// NewOrderRepository creates a new RecordOrderRepository.
func NewOrderRepository(store storage.Adapter) *RecordOrderRepository {
	return &RecordOrderRepository{store: store}
}

// Ledger returns every order across all users, oldest first.
func (r *RecordOrderRepository) Ledger() []models.Order {
	var orders []models.Order
	r.store.Read(storage.KeyOrders, &orders)
	return orders
}

// Save overwrites the persisted ledger.
func (r *RecordOrderRepository) Save(orders []models.Order) {
	r.store.Write(storage.KeyOrders, orders)
}

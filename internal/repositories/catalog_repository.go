package repositories

import (
	"lapak/internal/models"
	"lapak/internal/storage"
)

// CatalogRepository defines access to the categories record.
type CatalogRepository interface {
	All() []models.Category
	Exists() bool
	Save(categories []models.Category)
}

// RecordCatalogRepository persists the catalog through the storage adapter.
type RecordCatalogRepository struct {
	store storage.Adapter
}

// NewCatalogRepository creates a new RecordCatalogRepository.
func NewCatalogRepository(store storage.Adapter) *RecordCatalogRepository {
	return &RecordCatalogRepository{store: store}
}

// All returns the persisted catalog, or an empty list when none exists.
func (r *RecordCatalogRepository) All() []models.Category {
	var categories []models.Category
	r.store.Read(storage.KeyCategories, &categories)
	return categories
}

// Exists reports whether a catalog record has been persisted at all. The
// catalog service uses this to decide whether to seed defaults.
func (r *RecordCatalogRepository) Exists() bool {
	var categories []models.Category
	return r.store.Read(storage.KeyCategories, &categories)
}

// Save overwrites the persisted catalog.
func (r *RecordCatalogRepository) Save(categories []models.Category) {
	r.store.Write(storage.KeyCategories, categories)
}

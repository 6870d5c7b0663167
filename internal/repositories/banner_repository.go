package repositories

import (
	"lapak/internal/storage"
)

// BannerRepository defines access to the banner image list.
type BannerRepository interface {
	All() []string
	Save(banners []string)
}

// RecordBannerRepository persists banners through the storage adapter.
type RecordBannerRepository struct {
	store storage.Adapter
}

// NewBannerRepository creates a new RecordBannerRepository.
func NewBannerRepository(store storage.Adapter) *RecordBannerRepository {
	return &RecordBannerRepository{store: store}
}

// All returns the ordered banner image sources.
func (r *RecordBannerRepository) All() []string {
	var banners []string
	r.store.Read(storage.KeyBanners, &banners)
	return banners
}

// Save overwrites the persisted banner list.
func (r *RecordBannerRepository) Save(banners []string) {
	r.store.Write(storage.KeyBanners, banners)
}

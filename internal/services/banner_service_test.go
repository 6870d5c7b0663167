package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"lapak/internal/repositories"
	"lapak/internal/services"
	"lapak/internal/storage"
)

func newBannerFixture() *services.BannerService {
	store := storage.NewMemoryAdapter()
	return services.NewBannerService(repositories.NewBannerRepository(store))
}

func TestBannerService_AddUpToCap(t *testing.T) {
	banners := newBannerFixture()

	for i := 0; i < 10; i++ {
		assert.NoError(t, banners.Add(fmt.Sprintf("banner-%d.png", i)))
	}
	assert.ErrorIs(t, banners.Add("one-too-many.png"), services.ErrBannerLimit)
	assert.Len(t, banners.Banners(), 10)

	assert.ErrorIs(t, banners.Add("  "), services.ErrValidation)
}

func TestBannerService_RemoveAndMove(t *testing.T) {
	banners := newBannerFixture()
	for _, src := range []string{"a.png", "b.png", "c.png"} {
		assert.NoError(t, banners.Add(src))
	}

	assert.NoError(t, banners.Move(2, -1))
	assert.Equal(t, []string{"a.png", "c.png", "b.png"}, banners.Banners())

	// Moving past either end is a no-op, not an error.
	assert.NoError(t, banners.Move(0, -1))
	assert.Equal(t, []string{"a.png", "c.png", "b.png"}, banners.Banners())

	assert.NoError(t, banners.Remove(1))
	assert.Equal(t, []string{"a.png", "b.png"}, banners.Banners())

	assert.ErrorIs(t, banners.Remove(5), services.ErrBannerNotFound)
	assert.ErrorIs(t, banners.Move(5, 1), services.ErrBannerNotFound)
}

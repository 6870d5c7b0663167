package services

import (
	"fmt"
	"strings"
	"sync"

	"lapak/internal/repositories"
)

// maxBanners caps the rotating banner list.
const maxBanners = 10

// BannerService manages the ordered, admin-curated banner image list.
type BannerService struct {
	repo repositories.BannerRepository
	mu   sync.Mutex
}

// NewBannerService creates a new BannerService.
func NewBannerService(repo repositories.BannerRepository) *BannerService {
	return &BannerService{repo: repo}
}

// Banners returns the current banner sources in display order.
func (s *BannerService) Banners() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.All()
}

// Add appends a banner source, up to the cap of ten.
func (s *BannerService) Add(src string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("%w: banner image is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	banners := s.repo.All()
	if len(banners) >= maxBanners {
		return fmt.Errorf("%w: at most %d banners", ErrBannerLimit, maxBanners)
	}
	banners = append(banners, src)
	s.repo.Save(banners)
	return nil
}

// Remove deletes the banner at index.
func (s *BannerService) Remove(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	banners := s.repo.All()
	if index < 0 || index >= len(banners) {
		return fmt.Errorf("%w: index %d", ErrBannerNotFound, index)
	}
	banners = append(banners[:index], banners[index+1:]...)
	s.repo.Save(banners)
	return nil
}

// Move swaps the banner at index one position up (delta -1) or down
// (delta +1). Moves past either end are a no-op.
func (s *BannerService) Move(index, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	banners := s.repo.All()
	if index < 0 || index >= len(banners) {
		return fmt.Errorf("%w: index %d", ErrBannerNotFound, index)
	}
	target := index + delta
	if target < 0 || target >= len(banners) {
		return nil
	}
	banners[index], banners[target] = banners[target], banners[index]
	s.repo.Save(banners)
	return nil
}

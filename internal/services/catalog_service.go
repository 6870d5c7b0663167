package services

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// seedNames are the category names of the deterministic default catalog.
var seedNames = []string{
	"Electronics", "Fashion", "Home & Kitchen", "Books", "Toys",
	"Sports", "Beauty", "Grocery", "Stationery", "Garden",
}

// CatalogService owns the category/item tree. Every mutation operates on the
// full in-memory catalog and then persists it whole; categories and items
// keep their insertion order throughout.
type CatalogService struct {
	repo repositories.CatalogRepository
	mu   sync.Mutex
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Categories returns the catalog, seeding the deterministic default one on
// first access when nothing has been persisted yet.
func (s *CatalogService) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load must be called with the mutex held.
func (s *CatalogService) load() []models.Category {
	if s.repo.Exists() {
		return s.repo.All()
	}
	categories := defaultCatalog()
	s.repo.Save(categories)
	return categories
}

// defaultCatalog builds the seeded catalog: ten categories of ten items each
// with pseudo-random prices in [10, 100). The generator seed is fixed so
// every fresh store starts out identical.
func defaultCatalog() []models.Category {
	rng := rand.New(rand.NewSource(1))
	categories := make([]models.Category, 0, len(seedNames))
	for i, name := range seedNames {
		category := models.Category{
			ID:    i + 1,
			Name:  name,
			Items: make([]models.Item, 0, 10),
			Image: fmt.Sprintf("https://picsum.photos/seed/lapak-%d/600/400", i+1),
		}
		for j := 0; j < 10; j++ {
			cents := int64(rng.Intn(9000) + 1000) // 10.00 .. 99.99
			category.Items = append(category.Items, models.Item{
				ID:          j + 1,
				Name:        fmt.Sprintf("%s Item %d", name, j+1),
				Price:       decimal.New(cents, -2).StringFixed(2),
				Image:       fmt.Sprintf("https://picsum.photos/seed/lapak-%d-%d/300/300", i+1, j+1),
				Description: fmt.Sprintf("A fine pick from our %s range.", strings.ToLower(name)),
			})
		}
		categories = append(categories, category)
	}
	return categories
}

// AddCategory appends a new category. The new ID is one past the current
// maximum, starting at 1 for an empty catalog.
func (s *CatalogService) AddCategory(name, image string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.load()
	maxID := 0
	for _, category := range categories {
		if category.ID > maxID {
			maxID = category.ID
		}
	}

	category := models.Category{
		ID:    maxID + 1,
		Name:  strings.TrimSpace(name),
		Items: []models.Item{},
		Image: image,
	}
	categories = append(categories, category)
	s.repo.Save(categories)
	return &category, nil
}

// RenameCategory changes a category's name in place.
func (s *CatalogService) RenameCategory(categoryID int, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.load()
	for i := range categories {
		if categories[i].ID == categoryID {
			categories[i].Name = strings.TrimSpace(name)
			s.repo.Save(categories)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrCategoryNotFound, categoryID)
}

// DeleteCategory removes a category and everything in it.
func (s *CatalogService) DeleteCategory(categoryID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.load()
	for i := range categories {
		if categories[i].ID == categoryID {
			categories = append(categories[:i], categories[i+1:]...)
			s.repo.Save(categories)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrCategoryNotFound, categoryID)
}

// AddItem appends an item to a category. The item ID is unique within the
// category only; the price is normalized to the two-decimal string form.
func (s *CatalogService) AddItem(categoryID int, item models.Item) (*models.Item, error) {
	price, err := normalizeItem(&item)
	if err != nil {
		return nil, err
	}
	item.Price = price

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.load()
	for i := range categories {
		if categories[i].ID != categoryID {
			continue
		}
		maxID := 0
		for _, existing := range categories[i].Items {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}
		item.ID = maxID + 1
		categories[i].Items = append(categories[i].Items, item)
		s.repo.Save(categories)
		return &item, nil
	}
	return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, categoryID)
}

// EditItem replaces the named fields of an existing item. The item keeps its
// ID and position.
func (s *CatalogService) EditItem(categoryID, itemID int, item models.Item) error {
	price, err := normalizeItem(&item)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.load()
	for i := range categories {
		if categories[i].ID != categoryID {
			continue
		}
		for j := range categories[i].Items {
			if categories[i].Items[j].ID != itemID {
				continue
			}
			categories[i].Items[j].Name = item.Name
			categories[i].Items[j].Price = price
			categories[i].Items[j].Description = item.Description
			if item.Image != "" {
				categories[i].Items[j].Image = item.Image
			}
			s.repo.Save(categories)
			return nil
		}
		return fmt.Errorf("%w: id %d", ErrItemNotFound, itemID)
	}
	return fmt.Errorf("%w: id %d", ErrCategoryNotFound, categoryID)
}

// DeleteItem removes an item from its category.
func (s *CatalogService) DeleteItem(categoryID, itemID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.load()
	for i := range categories {
		if categories[i].ID != categoryID {
			continue
		}
		for j := range categories[i].Items {
			if categories[i].Items[j].ID == itemID {
				categories[i].Items = append(categories[i].Items[:j], categories[i].Items[j+1:]...)
				s.repo.Save(categories)
				return nil
			}
		}
		return fmt.Errorf("%w: id %d", ErrItemNotFound, itemID)
	}
	return fmt.Errorf("%w: id %d", ErrCategoryNotFound, categoryID)
}

func normalizeItem(item *models.Item) (string, error) {
	if strings.TrimSpace(item.Name) == "" {
		return "", fmt.Errorf("%w: item name is required", ErrValidation)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
	if err != nil || price.IsNegative() {
		return "", fmt.Errorf("%w: item price must be a non-negative decimal", ErrValidation)
	}
	item.Name = strings.TrimSpace(item.Name)
	return price.StringFixed(2), nil
}

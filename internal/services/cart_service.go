package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// CartService owns the cart record: an ordered list of lines, at most one
// per (category, item) pairing. Every mutation persists the full cart.
type CartService struct {
	cart    repositories.CartRepository
	catalog repositories.CatalogRepository
	mu      *sync.Mutex
}

// NewCartService creates a new CartService. mu must be the lock shared with
// the order service, which also rewrites the cart record at checkout.
func NewCartService(cart repositories.CartRepository, catalog repositories.CatalogRepository, mu *sync.Mutex) *CartService {
	return &CartService{cart: cart, catalog: catalog, mu: mu}
}

// Lines returns the current cart contents.
func (s *CartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Add merges qty of an item into the cart. A non-positive quantity is
// coerced to 1; an existing line for the same pairing accumulates instead of
// duplicating.
func (s *CartService) Add(categoryID, itemID, qty int) []models.CartLine {
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart.Lines()
	for i := range lines {
		if lines[i].CategoryID == categoryID && lines[i].ItemID == itemID {
			lines[i].Quantity += qty
			s.cart.Save(lines)
			return lines
		}
	}
	lines = append(lines, models.CartLine{CategoryID: categoryID, ItemID: itemID, Quantity: qty})
	s.cart.Save(lines)
	return lines
}

// Increment raises a line's quantity by one. Missing lines are a no-op.
func (s *CartService) Increment(categoryID, itemID int) []models.CartLine {
	return s.adjust(categoryID, itemID, 1)
}

// Decrement lowers a line's quantity by one, removing the line when it would
// drop below one. Missing lines are a no-op.
func (s *CartService) Decrement(categoryID, itemID int) []models.CartLine {
	return s.adjust(categoryID, itemID, -1)
}

func (s *CartService) adjust(categoryID, itemID, delta int) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart.Lines()
	for i := range lines {
		if lines[i].CategoryID != categoryID || lines[i].ItemID != itemID {
			continue
		}
		lines[i].Quantity += delta
		if lines[i].Quantity <= 0 {
			lines = append(lines[:i], lines[i+1:]...)
		}
		s.cart.Save(lines)
		return lines
	}
	return lines
}

// Remove deletes the matching line if present; otherwise a no-op.
func (s *CartService) Remove(categoryID, itemID int) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart.Lines()
	for i := range lines {
		if lines[i].CategoryID == categoryID && lines[i].ItemID == itemID {
			lines = append(lines[:i], lines[i+1:]...)
			s.cart.Save(lines)
			return lines
		}
	}
	return lines
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Save([]models.CartLine{})
}

// Summary resolves the cart against the catalog. Lines whose category or
// item has since been deleted are skipped rather than treated as errors.
func (s *CartService) Summary() models.CartSummary {
	s.mu.Lock()
	lines := s.cart.Lines()
	s.mu.Unlock()

	categories := s.catalog.All()
	count := 0
	total := decimal.Zero
	for _, line := range lines {
		item, ok := findItem(categories, line.CategoryID, line.ItemID)
		if !ok {
			continue
		}
		count += line.Quantity
		total = total.Add(parsePrice(item.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return models.CartSummary{Count: count, Total: formatPrice(total)}
}

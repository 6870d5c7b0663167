package services

import (
	"log"

	"github.com/shopspring/decimal"

	"lapak/internal/models"
)

// parsePrice converts a stored price string into a decimal. Prices are
// written by this module as two-decimal strings, but records may come from
// another frontend of the same store, so an unparseable price degrades to
// zero rather than failing the whole operation.
func parsePrice(price string) decimal.Decimal {
	d, err := decimal.NewFromString(price)
	if err != nil {
		log.Printf("unparseable price %q, treating as zero: %v", price, err)
		return decimal.Zero
	}
	return d
}

// formatPrice normalizes a price to the stored two-decimal string form.
func formatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// findItem resolves a cart reference against the catalog. Both the cart
// summary and checkout skip references the catalog no longer answers for,
// since the catalog may have changed after the cart line was created.
func findItem(categories []models.Category, categoryID, itemID int) (models.Item, bool) {
	for _, category := range categories {
		if category.ID != categoryID {
			continue
		}
		for _, item := range category.Items {
			if item.ID == itemID {
				return item, true
			}
		}
	}
	return models.Item{}, false
}

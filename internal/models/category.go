package models

// Item represents a single product inside a category. Prices are carried as
// strings with two decimal places so the stored shape stays stable across
// backends; arithmetic on them goes through shopspring/decimal.
type Item struct {
	ID          int    `json:"id" validate:"omitempty,gt=0"`
	Name        string `json:"name" validate:"required,max=100"`
	Price       string `json:"price" validate:"required"`
	Image       string `json:"image"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// Category owns an ordered list of items. Item IDs are unique within their
// category only; references from the cart therefore carry both IDs.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name" validate:"required,max=100"`
	Items []Item `json:"items"`
	Image string `json:"image,omitempty"`
}

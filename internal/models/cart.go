package models

// CartLine is one row in the cart: a distinct (category, item) pairing and
// its quantity. The cart holds at most one line per pairing; quantity is
// always >= 1 (a decrement to zero removes the line instead).
type CartLine struct {
	CategoryID int `json:"categoryId"`
	ItemID     int `json:"itemId"`
	Quantity   int `json:"quantity"`
}

// CartSummary is the aggregate view of a cart resolved against the catalog.
type CartSummary struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

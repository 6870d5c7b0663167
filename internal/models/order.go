package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting handling
	OrderStatusShipped   OrderStatus = "shipped"   // dispatched to the customer
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled before shipping
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusShipped || s == OrderStatusCancelled
}

// OrderItem is a line item frozen into an order at checkout time. Name and
// price are copies, not live references: catalog edits made after checkout
// must never change what an existing order reports.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// Order is a completed checkout. It exists in two places, the owning user's
// history and the global ledger, and only Status ever changes after creation.
type Order struct {
	ID     int64       `json:"id"`
	Date   string      `json:"date"`
	User   string      `json:"user"`
	Items  []OrderItem `json:"items"`
	Total  string      `json:"total"`
	Status OrderStatus `json:"status"`
}

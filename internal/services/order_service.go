package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/storage"
)

// orderDateLayout matches the display format the rest of the store expects
// in the persisted date field.
const orderDateLayout = "1/2/2006, 3:04:05 PM"

// EventPublisher publishes storefront events. Publishing is always
// fire-and-forget from the order flow's point of view: a broker failure is
// logged and the operation carries on.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// OrderService handles checkout, order history, and the status workflow.
//
// An order lives in two places: the owning user's history and the global
// ledger. Both copies must always agree on status, so every operation that
// touches both persists them through a single WriteAll, which the local
// storage backend applies transactionally.
type OrderService struct {
	orders  repositories.OrderRepository
	users   repositories.UserRepository
	cart    repositories.CartRepository
	catalog repositories.CatalogRepository
	session repositories.SessionRepository
	store   storage.Adapter
	events  EventPublisher

	mu     *sync.Mutex
	lastID int64
}

// NewOrderService creates a new OrderService. events may be nil, in which
// case no events are published. mu must be the lock shared with the account
// and cart services: checkout and status updates rewrite the users and cart
// records those services also own, and Fiber runs handlers on concurrent
// goroutines, so an unshared lock would let two read-modify-write cycles
// commit stale copies over each other.
func NewOrderService(
	orders repositories.OrderRepository,
	users repositories.UserRepository,
	cart repositories.CartRepository,
	catalog repositories.CatalogRepository,
	session repositories.SessionRepository,
	store storage.Adapter,
	events EventPublisher,
	mu *sync.Mutex,
) *OrderService {
	return &OrderService{
		orders:  orders,
		users:   users,
		cart:    cart,
		catalog: catalog,
		session: session,
		store:   store,
		events:  events,
		mu:      mu,
	}
}

// Checkout turns the current cart into an order for the logged-in user.
//
// It fails with ErrNotAuthenticated without a session and ErrUserNotFound if
// the session names an account that no longer exists. An empty cart is a
// silent no-op: no order, no error. On success the cart snapshot (name,
// quantity, price at time of purchase) is appended to both the user's
// history and the ledger, the cart is cleared, and all three records are
// persisted in one batch.
func (s *OrderService) Checkout() (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.session.LoggedInUser()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, nil
	}

	users := s.users.All()
	userIdx := -1
	for i := range users {
		if users[i].Username == username {
			userIdx = i
			break
		}
	}
	if userIdx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	categories := s.catalog.All()
	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		item, found := findItem(categories, line.CategoryID, line.ItemID)
		if !found {
			// Stale line, the catalog changed under the cart.
			continue
		}
		items = append(items, models.OrderItem{
			Name:     item.Name,
			Quantity: line.Quantity,
			Price:    item.Price,
		})
		total = total.Add(parsePrice(item.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	now := time.Now()
	order := models.Order{
		ID:     s.nextOrderID(now),
		Date:   now.Format(orderDateLayout),
		User:   username,
		Items:  items,
		Total:  total.StringFixed(2),
		Status: models.OrderStatusPending,
	}

	users[userIdx].History = append(users[userIdx].History, order)
	ledger := append(s.orders.Ledger(), order)

	s.store.WriteAll(map[string]any{
		storage.KeyUsers:  users,
		storage.KeyOrders: ledger,
		storage.KeyCart:   []models.CartLine{},
	})

	s.publish("order.created", map[string]any{
		"orderId": order.ID,
		"user":    order.User,
		"total":   order.Total,
		"status":  order.Status,
	})

	return &order, nil
}

// nextOrderID allocates a millisecond-timestamp ID, bumped when two
// checkouts land within the same millisecond so IDs stay strictly
// increasing within a process. Must be called with the mutex held.
func (s *OrderService) nextOrderID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Ledger returns every order across all users.
func (s *OrderService) Ledger() []models.Order {
	return s.orders.Ledger()
}

// HistoryFor returns one user's order history.
func (s *OrderService) HistoryFor(username string) ([]models.Order, error) {
	for _, user := range s.users.All() {
		if user.Username == username {
			return user.History, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
}

// SetStatus moves an order to a new status and propagates the change to the
// ledger and to every user-history copy of the same order in one batch
// write, so the two copies cannot drift apart on the local backend.
//
// Shipped and cancelled are terminal: transitions out of them are rejected.
func (s *OrderService) SetStatus(orderID int64, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ledger := s.orders.Ledger()
	ledgerIdx := -1
	for i := range ledger {
		if ledger[i].ID == orderID {
			ledgerIdx = i
			break
		}
	}
	if ledgerIdx == -1 {
		return fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}
	if current := ledger[ledgerIdx].Status; current.Terminal() && current != status {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, current)
	}
	ledger[ledgerIdx].Status = status

	users := s.users.All()
	matched := false
	for i := range users {
		for j := range users[i].History {
			if users[i].History[j].ID == orderID {
				users[i].History[j].Status = status
				matched = true
			}
		}
	}

	records := map[string]any{storage.KeyOrders: ledger}
	if matched {
		records[storage.KeyUsers] = users
	}
	s.store.WriteAll(records)

	s.publish("order.status_changed", map[string]any{
		"orderId": orderID,
		"status":  status,
	})

	return nil
}

// ExportCSV writes the admin billing export: one row per ledger order, every
// field quoted with embedded quotes doubled, items collapsed into a single
// "<qty> x <name>; ..." column.
func (s *OrderService) ExportCSV(w io.Writer) error {
	if _, err := io.WriteString(w, "ID,Date,User,Status,Items,Total\n"); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, order := range s.orders.Ledger() {
		parts := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			parts = append(parts, fmt.Sprintf("%d x %s", item.Quantity, item.Name))
		}
		fields := []string{
			fmt.Sprintf("%d", order.ID),
			order.Date,
			order.User,
			string(order.Status),
			strings.Join(parts, "; "),
			order.Total,
		}
		for i, field := range fields {
			fields[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

func (s *OrderService) publish(eventType string, payload map[string]any) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.events.Publish(eventType, body); err != nil {
		log.Printf("warning: failed to publish %s event: %v", eventType, err)
	}
}

package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lapak/internal/models"
	"lapak/internal/services"
)

// OrderHandler handles HTTP requests for checkout, order history, and the
// admin order workflow.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the user-facing order routes (behind the user
// session gate).
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/orders/history", h.HandleGetHistory)
}

// RegisterAdminRoutes registers the back-office order routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetLedger)
	orderRoutes.Patch("/:id/status", h.HandleSetStatus)
	orderRoutes.Get("/export.csv", h.HandleExportCSV)
}

// HandleCheckout snapshots the cart into a new pending order. An empty cart
// returns 204 and changes nothing.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	order, err := h.service.Checkout()
	if err != nil {
		log.Printf("Checkout failed: %v", err)
		return respondError(c, err)
	}
	if order == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetHistory returns the logged-in user's order history.
func (h *OrderHandler) HandleGetHistory(c *fiber.Ctx) error {
	username, _ := c.Locals("username").(string)
	history, err := h.service.HistoryFor(username)
	if err != nil {
		return respondError(c, err)
	}
	if history == nil {
		history = []models.Order{}
	}
	return c.JSON(history)
}

// HandleGetLedger returns every order across all users.
func (h *OrderHandler) HandleGetLedger(c *fiber.Ctx) error {
	return c.JSON(h.service.Ledger())
}

// StatusRequest is the body for a status transition.
type StatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// HandleSetStatus moves an order to a new status, updating the ledger and
// every user-history copy together.
func (h *OrderHandler) HandleSetStatus(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order id",
		})
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.service.SetStatus(int64(orderID), req.Status); err != nil {
		log.Printf("Status update for order %d failed: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}

// HandleExportCSV streams the billing export.
func (h *OrderHandler) HandleExportCSV(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	if err := h.service.ExportCSV(c); err != nil {
		log.Printf("CSV export failed: %v", err)
		return respondError(c, err)
	}
	return nil
}

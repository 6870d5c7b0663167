package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lapak/internal/services"
)

// CartHandler handles HTTP requests for the cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/summary", h.HandleGetSummary)
	cartRoutes.Post("/", h.HandleAdd)
	cartRoutes.Post("/increment", h.HandleIncrement)
	cartRoutes.Post("/decrement", h.HandleDecrement)
	cartRoutes.Post("/remove", h.HandleRemove)
	cartRoutes.Delete("/", h.HandleClear)
}

// CartLineRequest identifies a cart line; Quantity only matters for adds and
// is coerced to at least 1 there (absent or junk input counts as 1).
type CartLineRequest struct {
	CategoryID int `json:"categoryId"`
	ItemID     int `json:"itemId"`
	Quantity   int `json:"quantity"`
}

// HandleGetCart returns the raw cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.service.Lines())
}

// HandleGetSummary returns the cart resolved against the catalog.
func (h *CartHandler) HandleGetSummary(c *fiber.Ctx) error {
	return c.JSON(h.service.Summary())
}

// HandleAdd merges an item into the cart.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	return c.JSON(h.service.Add(req.CategoryID, req.ItemID, req.Quantity))
}

// HandleIncrement raises a line's quantity by one.
func (h *CartHandler) HandleIncrement(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	return c.JSON(h.service.Increment(req.CategoryID, req.ItemID))
}

// HandleDecrement lowers a line's quantity by one, removing it at zero.
func (h *CartHandler) HandleDecrement(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	return c.JSON(h.service.Decrement(req.CategoryID, req.ItemID))
}

// HandleRemove deletes a line outright.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	var req CartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	return c.JSON(h.service.Remove(req.CategoryID, req.ItemID))
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	h.service.Clear()
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

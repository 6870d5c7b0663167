package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lapak/internal/models"
	"lapak/internal/services"
)

// CatalogHandler handles HTTP requests for browsing and managing the
// category/item tree. Reads are public; mutations sit behind the admin gate.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/catalog", h.HandleGetCatalog)
}

// RegisterAdminRoutes registers the catalog mutation routes.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	catalogRoutes := router.Group("/catalog")
	catalogRoutes.Post("/categories", h.HandleAddCategory)
	catalogRoutes.Put("/categories/:id", h.HandleRenameCategory)
	catalogRoutes.Delete("/categories/:id", h.HandleDeleteCategory)
	catalogRoutes.Post("/categories/:id/items", h.HandleAddItem)
	catalogRoutes.Put("/categories/:id/items/:itemId", h.HandleEditItem)
	catalogRoutes.Delete("/categories/:id/items/:itemId", h.HandleDeleteItem)
}

// HandleGetCatalog returns the full catalog, seeding defaults on first use.
func (h *CatalogHandler) HandleGetCatalog(c *fiber.Ctx) error {
	return c.JSON(h.service.Categories())
}

// CategoryRequest is the body for creating or renaming a category.
type CategoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// HandleAddCategory creates a category.
func (h *CatalogHandler) HandleAddCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	category, err := h.service.AddCategory(req.Name, req.Image)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleRenameCategory renames a category.
func (h *CatalogHandler) HandleRenameCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.service.RenameCategory(categoryID, req.Name); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category updated"})
}

// HandleDeleteCategory removes a category and its items.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}

	if err := h.service.DeleteCategory(categoryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// HandleAddItem creates an item inside a category.
func (h *CatalogHandler) HandleAddItem(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}

	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	created, err := h.service.AddItem(categoryID, item)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleEditItem updates an item's fields in place.
func (h *CatalogHandler) HandleEditItem(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
		})
	}

	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.service.EditItem(categoryID, itemID, item); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated"})
}

// HandleDeleteItem removes an item from its category.
func (h *CatalogHandler) HandleDeleteItem(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid category id",
		})
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item id",
		})
	}

	if err := h.service.DeleteItem(categoryID, itemID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

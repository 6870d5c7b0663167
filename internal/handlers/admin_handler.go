package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lapak/internal/services"
)

// AdminHandler handles the back-office endpoints: admin session, credential
// rotation, user moderation, and the banner rotation.
type AdminHandler struct {
	accounts *services.AccountService
	banners  *services.BannerService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accounts *services.AccountService, banners *services.BannerService) *AdminHandler {
	return &AdminHandler{accounts: accounts, banners: banners}
}

// RegisterRoutes registers the public admin routes (login) plus the public
// banner read used by the storefront home page.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/admin/login", h.HandleAdminLogin)
	router.Get("/banners", h.HandleGetBanners)
}

// RegisterAdminRoutes registers the session-gated back-office routes.
func (h *AdminHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/logout", h.HandleAdminLogout)
	router.Post("/password", h.HandleChangePassword)

	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Post("/:username/block", h.HandleBlockUser)
	userRoutes.Post("/:username/unblock", h.HandleUnblockUser)
	userRoutes.Delete("/:username", h.HandleDeleteUser)

	bannerRoutes := router.Group("/banners")
	bannerRoutes.Post("/", h.HandleAddBanner)
	bannerRoutes.Delete("/:index", h.HandleRemoveBanner)
	bannerRoutes.Post("/:index/move", h.HandleMoveBanner)
}

// AdminLoginRequest represents the admin login body.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleAdminLogin authenticates against the admin record, provisioning it
// with the configured defaults on first use.
func (h *AdminHandler) HandleAdminLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing admin login body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.accounts.AdminLogin(req.Username, req.Password); err != nil {
		log.Printf("Admin login failed for %s: %v", req.Username, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Admin login successful"})
}

// HandleAdminLogout clears the admin session flag.
func (h *AdminHandler) HandleAdminLogout(c *fiber.Ctx) error {
	h.accounts.AdminLogout()
	return c.JSON(fiber.Map{"message": "Admin logged out"})
}

// PasswordChangeRequest represents the credential rotation body.
type PasswordChangeRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// HandleChangePassword rotates the admin password.
func (h *AdminHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.accounts.ChangeAdminPassword(req.OldPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Admin password updated"})
}

// HandleGetUsers lists every account for the moderation view, passwords
// stripped.
func (h *AdminHandler) HandleGetUsers(c *fiber.Ctx) error {
	users := h.accounts.Users()
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// HandleBlockUser blocks an account.
func (h *AdminHandler) HandleBlockUser(c *fiber.Ctx) error {
	if err := h.accounts.BlockUser(c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User blocked"})
}

// HandleUnblockUser lifts a block.
func (h *AdminHandler) HandleUnblockUser(c *fiber.Ctx) error {
	if err := h.accounts.UnblockUser(c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User unblocked"})
}

// HandleDeleteUser deletes an account.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.accounts.DeleteUser(c.Params("username")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// HandleGetBanners returns the banner rotation.
func (h *AdminHandler) HandleGetBanners(c *fiber.Ctx) error {
	return c.JSON(h.banners.Banners())
}

// BannerRequest represents the add-banner body.
type BannerRequest struct {
	Image string `json:"image"`
}

// HandleAddBanner appends a banner source.
func (h *AdminHandler) HandleAddBanner(c *fiber.Ctx) error {
	var req BannerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.banners.Add(req.Image); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.banners.Banners())
}

// HandleRemoveBanner deletes the banner at an index.
func (h *AdminHandler) HandleRemoveBanner(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid banner index",
		})
	}

	if err := h.banners.Remove(index); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.banners.Banners())
}

// MoveBannerRequest represents the reorder body; Delta is -1 or +1.
type MoveBannerRequest struct {
	Delta int `json:"delta"`
}

// HandleMoveBanner reorders the banner list one step at a time.
func (h *AdminHandler) HandleMoveBanner(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid banner index",
		})
	}

	var req MoveBannerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.banners.Move(index, req.Delta); err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.banners.Banners())
}

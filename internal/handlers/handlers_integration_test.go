package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"lapak/internal/handlers"
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"
	"lapak/internal/storage"
)

// setupApp wires the full HTTP surface over an in-memory store, mirroring
// the wiring in main.
func setupApp(t *testing.T) (*fiber.App, *storage.MemoryAdapter) {
	t.Helper()

	store := storage.NewMemoryAdapter()

	userRepo := repositories.NewUserRepository(store)
	catalogRepo := repositories.NewCatalogRepository(store)
	cartRepo := repositories.NewCartRepository(store)
	orderRepo := repositories.NewOrderRepository(store)
	bannerRepo := repositories.NewBannerRepository(store)
	adminRepo := repositories.NewAdminRepository(store)
	sessionRepo := repositories.NewSessionRepository(store)

	recordMu := &sync.Mutex{}
	catalogService := services.NewCatalogService(catalogRepo)
	cartService := services.NewCartService(cartRepo, catalogRepo, recordMu)
	orderService := services.NewOrderService(orderRepo, userRepo, cartRepo, catalogRepo, sessionRepo, store, nil, recordMu)
	accountService := services.NewAccountService(userRepo, adminRepo, sessionRepo, "admin", "admin123", recordMu)
	bannerService := services.NewBannerService(bannerRepo)

	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(accountService)
	adminHandler := handlers.NewAdminHandler(accountService, bannerService)
	dataHandler := handlers.NewDataHandler(store, t.TempDir())

	app := fiber.New()
	dataHandler.RegisterRoutes(app)

	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)
	adminHandler.RegisterRoutes(apiV1)

	adminRoutes := apiV1.Group("/admin", middleware.AdminRequired(accountService))
	adminHandler.RegisterAdminRoutes(adminRoutes)
	catalogHandler.RegisterAdminRoutes(adminRoutes)
	orderHandler.RegisterAdminRoutes(adminRoutes)

	userRoutes := apiV1.Group("", middleware.UserRequired(accountService))
	orderHandler.RegisterRoutes(userRoutes)

	return app, store
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}

func registerAlice(t *testing.T, app *fiber.App) {
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice",
		"fullName": "Alice A",
		"email":    "alice@example.com",
		"phone":    "555-0100",
		"address":  "1 Main St",
		"password": "pw",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func adminLogin(t *testing.T, app *fiber.App) {
	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestShoppingFlow(t *testing.T) {
	app, _ := setupApp(t)
	registerAlice(t, app)

	// Browsing seeds the default catalog.
	resp := doJSON(t, app, http.MethodGet, "/api/v1/catalog", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	categories := decodeBody[[]models.Category](t, resp)
	assert.Len(t, categories, 10)

	// Add the same item twice; quantities merge.
	for _, qty := range []int{2, 1} {
		resp = doJSON(t, app, http.MethodPost, "/api/v1/cart", map[string]int{
			"categoryId": 1, "itemId": 3, "quantity": qty,
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", nil)
	lines := decodeBody[[]models.CartLine](t, resp)
	assert.Equal(t, []models.CartLine{{CategoryID: 1, ItemID: 3, Quantity: 3}}, lines)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart/summary", nil)
	summary := decodeBody[models.CartSummary](t, resp)
	assert.Equal(t, 3, summary.Count)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeBody[models.Order](t, resp)
	assert.Equal(t, "alice", order.User)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/history", nil)
	history := decodeBody[[]models.Order](t, resp)
	assert.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)

	// Cart cleared; a second checkout is a no-op.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutRequiresLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterValidation(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "bob",
		"password": "pw",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	registerAlice(t, app)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": "alice",
		"fullName": "Alice Again",
		"email":    "alice2@example.com",
		"phone":    "555-0101",
		"address":  "2 Main St",
		"password": "pw",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminGate(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/admin/orders/", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	adminLogin(t, app)
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/orders/", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminOrderWorkflow(t *testing.T) {
	app, _ := setupApp(t)
	registerAlice(t, app)

	doJSON(t, app, http.MethodGet, "/api/v1/catalog", nil).Body.Close()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart", map[string]int{
		"categoryId": 1, "itemId": 1, "quantity": 1,
	})
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decodeBody[models.Order](t, resp)

	adminLogin(t, app)

	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), map[string]string{
		"status": "shipped",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Propagated to both the ledger and the user's history.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/orders/", nil)
	ledger := decodeBody[[]models.Order](t, resp)
	assert.Equal(t, models.OrderStatusShipped, ledger[0].Status)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/history", nil)
	history := decodeBody[[]models.Order](t, resp)
	assert.Equal(t, models.OrderStatusShipped, history[0].Status)

	// Terminal state: no way back.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", order.ID), map[string]string{
		"status": "pending",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/orders/export.csv", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "ID,Date,User,Status,Items,Total")
	assert.Contains(t, string(body), `"shipped"`)
}

func TestAdminUserModeration(t *testing.T) {
	app, _ := setupApp(t)
	registerAlice(t, app)
	doJSON(t, app, http.MethodPost, "/api/v1/auth/logout", nil).Body.Close()
	adminLogin(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/users/alice/block", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice", "password": "pw",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/users/alice/unblock", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "alice", "password": "pw",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/users/ghost", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBannerManagement(t *testing.T) {
	app, _ := setupApp(t)
	adminLogin(t, app)

	for _, src := range []string{"a.png", "b.png"} {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/banners/", map[string]string{"image": src})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/banners/1/move", map[string]int{"delta": -1})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	moved := decodeBody[[]string](t, resp)
	assert.Equal(t, []string{"b.png", "a.png"}, moved)

	// Public read.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/banners", nil)
	banners := decodeBody[[]string](t, resp)
	assert.Equal(t, []string{"b.png", "a.png"}, banners)
}

func TestDataAPI(t *testing.T) {
	app, store := setupApp(t)

	// Miss reads as the empty default.
	resp := doJSON(t, app, http.MethodGet, "/api/data?type=cart", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, "[]", string(body))

	resp = doJSON(t, app, http.MethodPost, "/api/data?type=cart", []models.CartLine{
		{CategoryID: 1, ItemID: 3, Quantity: 2},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	ok := decodeBody[map[string]bool](t, resp)
	assert.True(t, ok["success"])

	var lines []models.CartLine
	assert.True(t, store.Read("cart", &lines))
	assert.Len(t, lines, 1)

	resp = doJSON(t, app, http.MethodGet, "/api/data?type=cart", nil)
	roundTripped := decodeBody[[]models.CartLine](t, resp)
	assert.Equal(t, lines, roundTripped)

	// Key parameter is mandatory.
	resp = doJSON(t, app, http.MethodGet, "/api/data", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUploadImage(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/upload-image", map[string]string{
		"image":    "data:image/png;base64,aGVsbG8=",
		"filename": "photo.png",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decodeBody[map[string]string](t, resp)
	assert.Contains(t, out["url"], "/uploads/")
	assert.Contains(t, out["url"], ".png")

	resp = doJSON(t, app, http.MethodPost, "/api/upload-image", map[string]string{
		"image":    "data:image/png;base64,%%%not-base64",
		"filename": "photo.png",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

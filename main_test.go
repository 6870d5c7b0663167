package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"lapak/internal/storage"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestOpenStorage(t *testing.T) {
	store, err := openStorage("memory", "", "")
	assert.NoError(t, err)
	assert.IsType(t, &storage.MemoryAdapter{}, store)

	store, err = openStorage("remote", "", "http://localhost:9999")
	assert.NoError(t, err)
	assert.IsType(t, &storage.RemoteAdapter{}, store)

	_, err = openStorage("cassandra", "", "")
	assert.Error(t, err)
}

func TestBuildAppSmoke(t *testing.T) {
	store := storage.NewMemoryAdapter()
	app := buildApp(store, nil, t.TempDir(), "admin", "admin123")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The public surface is mounted.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The admin surface is gated.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lapak/internal/storage"
)

// DataHandler exposes the thin key-value API that the remote storage adapter
// consumes, plus the image upload endpoint. Running one instance with local
// storage and pointing a second at it with STORAGE_DRIVER=remote gives both
// the same store.
type DataHandler struct {
	store     storage.Adapter
	uploadDir string
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(store storage.Adapter, uploadDir string) *DataHandler {
	return &DataHandler{store: store, uploadDir: uploadDir}
}

// RegisterRoutes registers the data API at the app root (not under /api/v1,
// the paths are part of the adapter contract).
func (h *DataHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/api/data", h.HandleGetData)
	router.Post("/api/data", h.HandleSetData)
	router.Post("/api/upload-image", h.HandleUploadImage)
}

// HandleGetData returns the raw JSON stored under a key, or [] on a miss.
func (h *DataHandler) HandleGetData(c *fiber.Ctx) error {
	key := c.Query("type")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing type parameter",
		})
	}

	var raw json.RawMessage
	if !h.store.Read(key, &raw) {
		return c.Type("json").SendString("[]")
	}
	return c.Type("json").Send(raw)
}

// HandleSetData overwrites the record under a key with the request body.
func (h *DataHandler) HandleSetData(c *fiber.Ctx) error {
	key := c.Query("type")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing type parameter",
		})
	}

	var raw json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Body must be valid JSON",
		})
	}

	h.store.Write(key, raw)
	return c.JSON(fiber.Map{"success": true})
}

// UploadImageRequest carries a data-URI image and its original filename.
type UploadImageRequest struct {
	Image    string `json:"image"`
	Filename string `json:"filename"`
}

// HandleUploadImage decodes a data-URI upload, stores it under a fresh
// UUID name, and returns the servable URL.
func (h *DataHandler) HandleUploadImage(c *fiber.Ctx) error {
	var req UploadImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	payload := req.Image
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Image must be a base64 data URI",
		})
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if ext == "" {
		ext = ".png"
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("Failed to create upload directory: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
		})
	}

	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(h.uploadDir, name), data, 0o644); err != nil {
		log.Printf("Failed to write uploaded image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store image",
		})
	}

	return c.JSON(fiber.Map{"url": fmt.Sprintf("/uploads/%s", name)})
}

package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"lapak/internal/handlers"
	"lapak/internal/middleware"
	"lapak/internal/repositories"
	"lapak/internal/services"
	"lapak/internal/storage"
	"lapak/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORAGE_DRIVER", "sqlite") // sqlite | postgres | remote | memory
	viper.SetDefault("STORAGE_DSN", "lapak.db")
	viper.SetDefault("REMOTE_API_URL", "http://localhost:8080")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	uploadDir := viper.GetString("UPLOAD_DIR")

	// --- Storage ---
	store, err := openStorage(
		viper.GetString("STORAGE_DRIVER"),
		viper.GetString("STORAGE_DSN"),
		viper.GetString("REMOTE_API_URL"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	app := buildApp(store, events, uploadDir,
		viper.GetString("ADMIN_USERNAME"),
		viper.GetString("ADMIN_PASSWORD"),
	)

	// --- Event consumer ---
	// The demo consumer just logs what the order flow publishes. A real
	// deployment would run it in its own process.
	if mqClient != nil {
		go func() {
			log.Println("Starting storefront event consumer...")
			consumerErr := mqClient.ConsumeEvents(func(msg amqp.Delivery) error {
				log.Printf("Received %s event (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if consumerErr != nil {
				log.Printf("Failed to start event consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openStorage picks the persistence backend from configuration.
func openStorage(driver, dsn, remoteURL string) (storage.Adapter, error) {
	switch driver {
	case "remote":
		return storage.NewRemoteAdapter(remoteURL), nil
	case "memory":
		return storage.NewMemoryAdapter(), nil
	default:
		db, err := storage.Open(driver, dsn)
		if err != nil {
			return nil, err
		}
		return storage.NewGormAdapter(db)
	}
}

// buildApp wires repositories, services, handlers, and routes onto a Fiber
// app. Split out of main so tests can stand up the whole surface against an
// in-memory backend.
func buildApp(store storage.Adapter, events services.EventPublisher, uploadDir, adminUser, adminPass string) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewUserRepository(store)
	catalogRepo := repositories.NewCatalogRepository(store)
	cartRepo := repositories.NewCartRepository(store)
	orderRepo := repositories.NewOrderRepository(store)
	bannerRepo := repositories.NewBannerRepository(store)
	adminRepo := repositories.NewAdminRepository(store)
	sessionRepo := repositories.NewSessionRepository(store)

	// --- Services ---
	// The users and cart records are mutated by more than one service, so
	// those services share one lock for their read-modify-write cycles.
	recordMu := &sync.Mutex{}
	catalogService := services.NewCatalogService(catalogRepo)
	cartService := services.NewCartService(cartRepo, catalogRepo, recordMu)
	orderService := services.NewOrderService(orderRepo, userRepo, cartRepo, catalogRepo, sessionRepo, store, events, recordMu)
	accountService := services.NewAccountService(userRepo, adminRepo, sessionRepo, adminUser, adminPass, recordMu)
	bannerService := services.NewBannerService(bannerRepo)

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(accountService)
	adminHandler := handlers.NewAdminHandler(accountService, bannerService)
	dataHandler := handlers.NewDataHandler(store, uploadDir)

	app := fiber.New()
	app.Use(logger.New())

	// Key-value data API and uploads live at the root: their paths are part
	// of the remote adapter contract, not of this app's own API version.
	dataHandler.RegisterRoutes(app)
	app.Static("/uploads", uploadDir)

	apiV1 := app.Group("/api/v1")

	// Public routes: browsing, cart, registration, logins.
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)
	adminHandler.RegisterRoutes(apiV1)

	// Back-office routes require the admin session flag. Registered before
	// the user gate below: Fiber matches handlers in registration order, so
	// admin traffic terminates here and never reaches UserRequired.
	adminRoutes := apiV1.Group("/admin", middleware.AdminRequired(accountService))
	adminHandler.RegisterAdminRoutes(adminRoutes)
	catalogHandler.RegisterAdminRoutes(adminRoutes)
	orderHandler.RegisterAdminRoutes(adminRoutes)

	// Checkout and history require the persisted user session.
	userRoutes := apiV1.Group("", middleware.UserRequired(accountService))
	orderHandler.RegisterRoutes(userRoutes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with the standard middleware stack.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Tienda Fulfillment v1.0",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	return app
}

// SetupRoutes wires the REST surface that calls into the core.
func SetupRoutes(app *fiber.App, products *ProductHandler, categories *CategoryHandler, orders *OrderHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return SuccessResponse(c, "Service is healthy", fiber.Map{"status": "healthy"})
	})

	productRoutes := api.Group("/products")
	productRoutes.Get("/", products.Find)
	productRoutes.Get("/:id<int>", products.FindByID)
	productRoutes.Get("/uuid/:uuid", products.FindByUUID)
	productRoutes.Post("/", products.Create)
	productRoutes.Put("/:id<int>", products.Update)
	productRoutes.Delete("/:id<int>", products.Delete)

	categoryRoutes := api.Group("/categories")
	categoryRoutes.Get("/", categories.Find)
	categoryRoutes.Get("/:id", categories.FindByID)
	categoryRoutes.Post("/", categories.Create)
	categoryRoutes.Put("/:id", categories.Update)
	categoryRoutes.Delete("/:id", categories.Delete)

	orderRoutes := api.Group("/orders")
	orderRoutes.Post("/", orders.Create)
	orderRoutes.Get("/:id", orders.FindByID)
	orderRoutes.Put("/:id", orders.Update)
	orderRoutes.Delete("/:id", orders.Delete)

	users := api.Group("/users")
	users.Get("/:user_id/orders", orders.FindByUserID)

	app.Use("*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}

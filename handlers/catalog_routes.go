package handlers

import (
	"garage-club-system/middleware"
	"garage-club-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(app *fiber.App, carService *services.CarService) {
	// 🔓 Public catalog — browsing and search need no user context
	app.Get("/cars", carService.ListCars)
	app.Get("/cars/:id", carService.GetCarByID)

	// 🔒 Admin-only catalog management. Middleware is attached per route:
	// a prefix-"/" group would run it for every route registered after it.
	app.Post("/cars",
		middleware.UserContextMiddleware(), middleware.RequireRole("admin"),
		carService.CreateCar)
	app.Post("/cars/:id/image",
		middleware.UserContextMiddleware(), middleware.RequireRole("admin"),
		carService.UploadCarImage)
}

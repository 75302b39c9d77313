package handlers

import (
	"garage-club-system/middleware"
	"garage-club-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService) {
	// 🔓 Public routes — the challenge board is visible to everyone
	app.Get("/challenges", challengeService.ListChallenges)
	app.Get("/challenges/:id", challengeService.GetChallengeByID)

	// 🔒 Admin-only challenge authoring, middleware scoped to this route only
	app.Post("/challenges",
		middleware.UserContextMiddleware(), middleware.RequireRole("admin"),
		challengeService.CreateChallenge)
}

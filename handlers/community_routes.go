// handlers/community_routes.go
package handlers

import (
	"garage-club-system/middleware"
	"garage-club-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(
	app *fiber.App,
	garageService *services.GarageService,
	submissionService *services.SubmissionService,
	reactionService *services.ReactionService,
	inviteService *services.InviteService,
	unlockService *services.UnlockService,
	progressionService *services.ProgressionService,
	memberService *services.MemberService,
	authClient *services.AuthServiceClient,
) {
	// 🔓 Public routes
	app.Get("/submissions", submissionService.ListSubmissions)

	app.Get("/unlocks/catalog", func(c *fiber.Ctx) error {
		items, err := unlockService.ListUnlockables()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch unlockables",
				"cause": err.Error(),
			})
		}
		return c.JSON(items)
	})

	// SSE uses query-param auth because EventSource cannot set headers
	app.Get("/unlocks/stream",
		middleware.SSEAuthMiddleware(authClient),
		unlockService.StreamUserUnlocksSSE,
	)

	// 🔐 Authenticated routes. User context is attached per route rather than
	// through a prefix-"/" group, which would leak onto later registrations.
	userCtx := middleware.UserContextMiddleware()

	// Garages
	app.Get("/garages", userCtx, garageService.ListGarages)
	app.Post("/garages", userCtx, garageService.HandleCreateGarage)

	// Challenge submissions
	app.Post("/submissions", userCtx, submissionService.HandleCreateSubmission)

	// Reactions
	app.Post("/reactions", userCtx, reactionService.HandleReact)
	app.Delete("/reactions", userCtx, reactionService.HandleUnreact)

	// Member directory for the invite screen
	app.Get("/members/search", userCtx, memberService.SearchMembers)

	// Invites
	app.Get("/invites", userCtx, inviteService.ListInvites)
	app.Post("/invites", userCtx, inviteService.HandleCreateInvite)
	app.Post("/invites/accept", userCtx, inviteService.HandleAcceptInvite)

	// Unlocks
	app.Get("/unlocks", userCtx, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		unlocks, err := unlockService.ListUnlocks(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch unlocks",
				"cause": err.Error(),
			})
		}
		return c.JSON(unlocks)
	})

	// Aggregate stats for the profile screen
	app.Get("/users/stats", userCtx, func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		stats, err := progressionService.Stats(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(stats)
	})
}

// garage-club-system/middleware/sse_auth.go
package middleware

import (
	"log"
	"strings"

	"garage-club-system/services"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const (
	UserIDContextKey    contextKey = "user_id"
	UserRolesContextKey contextKey = "user_roles"
	DeviceIDContextKey  contextKey = "device_id"
)

// SSEAuthMiddleware validates `token` and `device_id` from query params via
// AuthServiceClient. EventSource cannot set headers, so the unlock stream
// authenticates through the query string instead of gateway headers.
//
// Usage:
//
//	app.Get("/unlocks/stream", middleware.SSEAuthMiddleware(authClient), unlockService.StreamUserUnlocksSSE)
func SSEAuthMiddleware(authClient *services.AuthServiceClient) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		accessToken := strings.TrimSpace(string(c.Request().URI().QueryArgs().Peek("token")))
		deviceID := strings.TrimSpace(string(c.Request().URI().QueryArgs().Peek("device_id")))

		if accessToken == "" || deviceID == "" {
			log.Printf("[SSEAuth] ❌ Missing query params on %s", c.Path())
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing token or device_id in query",
			})
		}

		resp, err := authClient.ValidateToken(accessToken, deviceID)
		if err != nil {
			log.Printf("[SSEAuth] ❌ Validation failed for device %s: %v", deviceID, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals(string(UserIDContextKey), resp.UserID)
		c.Locals(string(DeviceIDContextKey), resp.DeviceID)
		c.Locals(string(UserRolesContextKey), resp.Roles)

		return c.Next()
	}
}

// middleware/device_token.go
package middleware

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DeviceTokenMiddleware guards the API with the token shared with the app.
// The token is read from "Authorization: Bearer <token>", the X-App-Token
// header, or the `token` query param (EventSource cannot set headers).
// An empty expected token disables the guard.
func DeviceTokenMiddleware(expectedToken string) fiber.Handler {
	if expectedToken == "" {
		log.Println("⚠️  [DEVICE_AUTH] APP_TOKEN not set, API is open to local callers")
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		token := presentedToken(c)
		if token == "" {
			log.Printf("🚫 [DEVICE_AUTH] Missing token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "app token missing",
			})
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
			log.Printf("❌ [DEVICE_AUTH] Invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid app token",
			})
		}

		return c.Next()
	}
}

func presentedToken(c *fiber.Ctx) string {
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
		// no "Bearer " prefix: take the raw value
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if t := c.Get("X-App-Token"); t != "" {
		return strings.TrimSpace(t)
	}
	return strings.TrimSpace(c.Query("token"))
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Locals keys shared with the controllers.
const (
	PlayerIDKey   = "playerID"
	WSPlayerIDKey = "wsPlayerID"
)

// EnsurePlayerID reads the caller's player id from the X-Player-ID header or
// the playerId query parameter and stores it under PlayerIDKey.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			log.Debugf("rejecting %s %s without player id", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals(PlayerIDKey, playerID)
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID, or "" if there is none.
func PlayerID(c *fiber.Ctx) string {
	playerID, _ := c.Locals(PlayerIDKey).(string)
	return playerID
}

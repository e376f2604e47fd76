package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade lets only upgrade requests for an identified player through
// to the websocket handler.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		playerID := PlayerID(c)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// locals are the only request state the upgraded connection keeps
		c.Locals(WSPlayerIDKey, playerID)
		return c.Next()
	}
}

// WSPlayerID returns the player id carried over to an upgraded connection.
func WSPlayerID(c *websocket.Conn) string {
	playerID, _ := c.Locals(WSPlayerIDKey).(string)
	return playerID
}

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/minimax-chess/internal/testutil"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/whoami", EnsurePlayerID(), func(c *fiber.Ctx) error {
		return c.SendString(PlayerID(c))
	})
	app.Get("/ws/:gameId", EnsurePlayerID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		playerID, _ := c.Locals(WSPlayerIDKey).(string)
		return c.SendString(playerID)
	})
	return app
}

func get(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s: %v", req.URL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestEnsurePlayerID(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"header", "/api/whoami", "alice", fiber.StatusOK, "alice"},
		{"query", "/api/whoami?playerId=bob", "", fiber.StatusOK, "bob"},
		{"header wins", "/api/whoami?playerId=bob", "alice", fiber.StatusOK, "alice"},
		{"missing", "/api/whoami", "", fiber.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Player-ID", tt.header)
			}
			status, body := get(t, app, req)
			testutil.AssertEqual(t, status, tt.status)
			if tt.body != "" {
				testutil.AssertEqual(t, body, tt.body)
			}
		})
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/ws/g1?playerId=alice", nil)
	status, _ := get(t, app, req)
	testutil.AssertEqual(t, status, fiber.StatusUpgradeRequired)

	req = httptest.NewRequest(http.MethodGet, "/ws/g1?playerId=alice", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	status, body := get(t, app, req)
	testutil.AssertEqual(t, status, fiber.StatusOK)
	testutil.AssertEqual(t, body, "alice", "player id carried over for the connection")
}

package routes

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/EGASHIRAAkihide/karada/internal/config"
	"github.com/EGASHIRAAkihide/karada/pkg/utils"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	cfg := &config.Config{JWTSecret: "routes-test-secret"}
	auditLogger, err := RegisterRoutes(app, cfg, nil)
	if err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	if auditLogger == nil {
		t.Fatal("RegisterRoutes returned a nil audit logger")
	}
	return app
}

// The activity feed is consumed from browsers, whose WebSocket API cannot set
// an Authorization header. The route must therefore sit outside the
// header-auth group and accept the token as a query parameter.
func TestActivityFeedRouteAcceptsQueryToken(t *testing.T) {
	app := newTestApp(t)

	token, err := utils.GenerateToken("9", "user", "routes-test-secret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/ws/activities?token="+token, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// A non-admin token must be refused by the feed's own gate. Reaching the
	// 403 proves the query token was read instead of an Authorization header.
	if resp.StatusCode != fiber.StatusForbidden {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 403 from the feed gate, got %d: %s", resp.StatusCode, body)
	}
}

func TestActivityFeedRouteRequiresUpgrade(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ws/activities", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusUpgradeRequired {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 426 for a plain request, got %d: %s", resp.StatusCode, body)
	}
}

func TestActivityFeedRouteRejectsMissingToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/ws/activities", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", resp.StatusCode)
	}
}

func TestProtectedGroupStillRequiresAuthHeader(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/activities", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without an authorization header, got %d", resp.StatusCode)
	}
}

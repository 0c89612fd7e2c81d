package handlers

import (
	"context"
	"strings"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
	activityws "github.com/EGASHIRAAkihide/karada/internal/websocket"
	"github.com/EGASHIRAAkihide/karada/pkg/utils"
)

type activityLister interface {
	List(ctx context.Context, filter repository.ActivityListFilter) ([]models.Activity, error)
}

type ActivityHandler struct {
	activityRepo activityLister
	hub          *activityws.Hub
	jwtSecret    string
}

func NewActivityHandler(activityRepo activityLister, hub *activityws.Hub, jwtSecret string) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo, hub: hub, jwtSecret: jwtSecret}
}

// ListActivities returns the audit trail, newest first. Admin only; supports
// the action and date filters the admin log view offers.
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	filter := repository.ActivityListFilter{
		Action: strings.TrimSpace(c.Query("action")),
		Limit:  50,
	}
	if rawDate := strings.TrimSpace(c.Query("date")); rawDate != "" {
		date, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be in YYYY-MM-DD format"})
		}
		filter.Date = &date
	}

	activities, err := h.activityRepo.List(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list activities"})
	}

	return c.JSON(fiber.Map{"activities": activities})
}

// WebSocketAuth gates the live feed upgrade. The browser WebSocket API cannot
// set headers, so the token is also accepted as a query parameter.
func (h *ActivityHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}
	if claims.Role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("role", claims.Role)
	return c.Next()
}

func (h *ActivityHandler) HandleWebSocket(conn *websocket.Conn) {
	subscriber := activityws.NewSubscriber(h.hub, conn)

	h.hub.Register(subscriber)
	go subscriber.WritePump()
	subscriber.ReadPump()
}

func (h *ActivityHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, fiber.ErrUnauthorized
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

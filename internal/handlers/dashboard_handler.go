package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/EGASHIRAAkihide/karada/internal/models"
)

const recentActivityLimit = 5

type clientCounter interface {
	Count(ctx context.Context) (int, error)
}

type recentActivityLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.Activity, error)
}

type DashboardHandler struct {
	clientRepo   clientCounter
	activityRepo recentActivityLister
}

func NewDashboardHandler(clientRepo clientCounter, activityRepo recentActivityLister) *DashboardHandler {
	return &DashboardHandler{clientRepo: clientRepo, activityRepo: activityRepo}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	clientsCount, err := h.clientRepo.Count(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count clients"})
	}

	recent, err := h.activityRepo.ListRecent(c.Context(), recentActivityLimit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list recent activities"})
	}

	return c.JSON(fiber.Map{
		"clients_count":     clientsCount,
		"recent_activities": recent,
	})
}

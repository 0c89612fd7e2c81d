package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
	"github.com/EGASHIRAAkihide/karada/internal/services"
)

type clientStore interface {
	Create(ctx context.Context, input repository.CreateClientInput) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	Update(ctx context.Context, id int64, input repository.CreateClientInput) (*models.Client, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ClientHandler struct {
	clientRepo clientStore
	audit      services.AuditSink
}

func NewClientHandler(clientRepo clientStore, audit services.AuditSink) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, audit: audit}
}

type clientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if msg := validateClientRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	client, err := h.clientRepo.Create(c.Context(), repository.CreateClientInput{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create client"})
	}

	h.audit.Record(actorID, "クライアント追加", "clients", map[string]any{"client_id": client.ID, "name": client.Name})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.clientRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list clients"})
	}

	return c.JSON(fiber.Map{"clients": clients})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	clientID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	client, err := h.clientRepo.GetByID(c.Context(), clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch client"})
	}

	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	clientID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if msg := validateClientRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	client, err := h.clientRepo.Update(c.Context(), clientID, repository.CreateClientInput{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update client"})
	}

	h.audit.Record(actorID, "クライアント更新", "clients", map[string]any{"client_id": client.ID})

	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	clientID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	deleted, err := h.clientRepo.Delete(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete client"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	}

	h.audit.Record(actorID, "クライアント削除", "clients", map[string]any{"client_id": clientID})

	return c.JSON(fiber.Map{"deleted": true})
}

package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/services"
)

const generateErrorResult = "エラーが発生しました。"

type generationApplicationService interface {
	CreateRequest(ctx context.Context, userID int64, input services.TrainingPromptInput) (*models.TrainingRequest, error)
	ListRequests(ctx context.Context, userID int64) ([]models.TrainingRequest, error)
	DeleteRequest(ctx context.Context, actorID int64, requestID int64) error
}

type TrainerHandler struct {
	service    generationApplicationService
	completion services.CompletionClient
	audit      services.AuditSink
}

func NewTrainerHandler(
	service generationApplicationService,
	completion services.CompletionClient,
	audit services.AuditSink,
) *TrainerHandler {
	return &TrainerHandler{service: service, completion: completion, audit: audit}
}

type trainingRequestRequest struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Goal       string `json:"goal"`
	Experience string `json:"experience"`
	Equipment  string `json:"equipment"`
	Concerns   string `json:"concerns"`
}

type generateWorkoutRequest struct {
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Goal       string `json:"goal"`
	Experience string `json:"experience"`
	Equipment  string `json:"equipment"`
	Frequency  int    `json:"frequency"`
	Concern    string `json:"concern"`
}

func (h *TrainerHandler) CreateRequest(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req trainingRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if msg := validateTrainingRequestRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	request, err := h.service.CreateRequest(c.Context(), actorID, services.TrainingPromptInput{
		Name:       strings.TrimSpace(req.Name),
		Age:        req.Age,
		Gender:     strings.TrimSpace(req.Gender),
		Goal:       strings.TrimSpace(req.Goal),
		Experience: strings.TrimSpace(req.Experience),
		Equipment:  strings.TrimSpace(req.Equipment),
		Concerns:   strings.TrimSpace(req.Concerns),
	})
	if err != nil {
		return mapTrainerError(c, err)
	}

	h.audit.Record(actorID, "プロンプト生成", "training_requests", map[string]any{"request_id": request.ID})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": request})
}

func (h *TrainerHandler) ListRequests(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	requests, err := h.service.ListRequests(c.Context(), actorID)
	if err != nil {
		return mapTrainerError(c, err)
	}

	return c.JSON(fiber.Map{"requests": requests})
}

func (h *TrainerHandler) DeleteRequest(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	requestID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	if err := h.service.DeleteRequest(c.Context(), actorID, requestID); err != nil {
		return mapTrainerError(c, err)
	}

	return c.JSON(fiber.Map{"deleted": true})
}

// GenerateWorkout forwards a templated prompt to the completion provider.
// One unretried upstream request; any upstream failure collapses into a
// generic error result.
func (h *TrainerHandler) GenerateWorkout(c *fiber.Ctx) error {
	var req generateWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if msg := validateGenerateWorkoutRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	prompt := services.BuildWorkoutPrompt(services.WorkoutPromptInput{
		Age:        req.Age,
		Gender:     strings.TrimSpace(req.Gender),
		Goal:       strings.TrimSpace(req.Goal),
		Experience: strings.TrimSpace(req.Experience),
		Equipment:  strings.TrimSpace(req.Equipment),
		Frequency:  req.Frequency,
		Concern:    req.Concern,
	})

	result, err := h.completion.Complete(c.Context(), services.TrainerSystemPrompt(), prompt)
	if err != nil {
		log.Printf("generate workout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"result": generateErrorResult})
	}

	return c.JSON(fiber.Map{"result": result})
}

func mapTrainerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Training request not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process training request"})
	}
}

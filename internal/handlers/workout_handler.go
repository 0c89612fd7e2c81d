package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
	"github.com/EGASHIRAAkihide/karada/internal/services"
)

type workoutStore interface {
	Create(ctx context.Context, input repository.WorkoutInput) (*models.Workout, error)
	ListByClientID(ctx context.Context, clientID int64) ([]models.Workout, error)
	GetByID(ctx context.Context, id int64) (*models.Workout, error)
	Update(ctx context.Context, id int64, input repository.WorkoutInput) (*models.Workout, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type clientReader interface {
	GetByID(ctx context.Context, id int64) (*models.Client, error)
}

type WorkoutHandler struct {
	workoutRepo workoutStore
	clientRepo  clientReader
	audit       services.AuditSink
}

func NewWorkoutHandler(workoutRepo workoutStore, clientRepo clientReader, audit services.AuditSink) *WorkoutHandler {
	return &WorkoutHandler{workoutRepo: workoutRepo, clientRepo: clientRepo, audit: audit}
}

type workoutRequest struct {
	Date           string  `json:"date"`
	ExerciseName   string  `json:"exercise_name"`
	SetsRepsWeight string  `json:"sets_reps_weight"`
	Notes          *string `json:"notes"`
}

func (h *WorkoutHandler) CreateWorkout(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	clientID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	var req workoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if msg := validateWorkoutRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	if _, err := h.clientRepo.GetByID(c.Context(), clientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch client"})
	}

	date, _ := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	workout, err := h.workoutRepo.Create(c.Context(), repository.WorkoutInput{
		ClientID:       clientID,
		Date:           date,
		ExerciseName:   strings.TrimSpace(req.ExerciseName),
		SetsRepsWeight: strings.TrimSpace(req.SetsRepsWeight),
		Notes:          req.Notes,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create workout"})
	}

	h.audit.Record(actorID, "ワークアウト記録", "workouts", map[string]any{
		"workout_id": workout.ID,
		"client_id":  clientID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	clientID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	if _, err := h.clientRepo.GetByID(c.Context(), clientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch client"})
	}

	workouts, err := h.workoutRepo.ListByClientID(c.Context(), clientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list workouts"})
	}

	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) GetWorkout(c *fiber.Ctx) error {
	workoutID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.workoutRepo.GetByID(c.Context(), workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workout"})
	}

	return c.JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) UpdateWorkout(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	var req workoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if msg := validateWorkoutRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	date, _ := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	workout, err := h.workoutRepo.Update(c.Context(), workoutID, repository.WorkoutInput{
		Date:           date,
		ExerciseName:   strings.TrimSpace(req.ExerciseName),
		SetsRepsWeight: strings.TrimSpace(req.SetsRepsWeight),
		Notes:          req.Notes,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update workout"})
	}

	h.audit.Record(actorID, "ワークアウト更新", "workouts", map[string]any{"workout_id": workout.ID})

	return c.JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) DeleteWorkout(c *fiber.Ctx) error {
	actorID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := parsePathID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	deleted, err := h.workoutRepo.Delete(c.Context(), workoutID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete workout"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
	}

	h.audit.Record(actorID, "ワークアウト削除", "workouts", map[string]any{"workout_id": workoutID})

	return c.JSON(fiber.Map{"deleted": true})
}

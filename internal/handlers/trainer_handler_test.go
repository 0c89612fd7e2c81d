package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/services"
)

type stubGenerationService struct {
	createResult *models.TrainingRequest
	createErr    error
	listResult   []models.TrainingRequest
	listErr      error
	deleteErr    error
	createCalls  int
	lastUserID   int64
	lastInput    services.TrainingPromptInput
}

func (s *stubGenerationService) CreateRequest(_ context.Context, userID int64, input services.TrainingPromptInput) (*models.TrainingRequest, error) {
	s.createCalls++
	s.lastUserID = userID
	s.lastInput = input
	return s.createResult, s.createErr
}

func (s *stubGenerationService) ListRequests(_ context.Context, userID int64) ([]models.TrainingRequest, error) {
	s.lastUserID = userID
	return s.listResult, s.listErr
}

func (s *stubGenerationService) DeleteRequest(_ context.Context, actorID int64, _ int64) error {
	s.lastUserID = actorID
	return s.deleteErr
}

type stubCompletion struct {
	result string
	err    error
	calls  int
}

func (s *stubCompletion) Complete(_ context.Context, _ string, _ string) (string, error) {
	s.calls++
	return s.result, s.err
}

func TestCreateRequestPersistsForActor(t *testing.T) {
	service := &stubGenerationService{
		createResult: &models.TrainingRequest{ID: 11, UserID: 42, Name: "Taro", Prompt: "..."},
	}
	handler := NewTrainerHandler(service, &stubCompletion{}, &stubAudit{})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "user")
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/trainer/requests", handler.CreateRequest)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trainer/requests", strings.NewReader(`{
		"name": "Taro",
		"age": 30,
		"gender": "男性",
		"goal": "減量",
		"experience": "初心者",
		"equipment": "ダンベル",
		"concerns": "腰痛"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 {
		t.Fatalf("expected user id 42, got %d", service.lastUserID)
	}
	if service.lastInput.Concerns != "腰痛" {
		t.Fatalf("unexpected input: %+v", service.lastInput)
	}
}

func TestCreateRequestWithoutSessionIsRejectedWithoutWrite(t *testing.T) {
	service := &stubGenerationService{}
	handler := NewTrainerHandler(service, &stubCompletion{}, &stubAudit{})

	// No auth middleware: locals are absent, as for an unauthenticated call.
	app := fiber.New()
	app.Post("/api/v1/trainer/requests", handler.CreateRequest)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trainer/requests", strings.NewReader(`{
		"name": "Taro",
		"age": 30,
		"gender": "男性",
		"goal": "減量",
		"experience": "初心者",
		"equipment": "ダンベル"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if service.createCalls != 0 {
		t.Fatalf("expected no service call, got %d", service.createCalls)
	}
}

func TestDeleteRequestOfOtherUserIsForbidden(t *testing.T) {
	service := &stubGenerationService{deleteErr: services.ErrForbidden}
	handler := NewTrainerHandler(service, &stubCompletion{}, &stubAudit{})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "user")
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Delete("/api/v1/trainer/requests/:id", handler.DeleteRequest)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/trainer/requests/11", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestGenerateWorkoutReturnsResult(t *testing.T) {
	completion := &stubCompletion{result: "月曜日: スクワット"}
	handler := NewTrainerHandler(&stubGenerationService{}, completion, &stubAudit{})

	app := fiber.New()
	app.Post("/api/generate-workout", handler.GenerateWorkout)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-workout", strings.NewReader(`{
		"age": 30,
		"gender": "男性",
		"goal": "筋肥大",
		"experience": "中級者",
		"equipment": "バーベル",
		"frequency": 3
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Result != "月曜日: スクワット" {
		t.Fatalf("unexpected result: %q", body.Result)
	}
	if completion.calls != 1 {
		t.Fatalf("expected one completion call, got %d", completion.calls)
	}
}

func TestGenerateWorkoutUpstreamFailureReturnsGenericError(t *testing.T) {
	completion := &stubCompletion{err: errors.New("completion request: status 401: invalid api key")}
	handler := NewTrainerHandler(&stubGenerationService{}, completion, &stubAudit{})

	app := fiber.New()
	app.Post("/api/generate-workout", handler.GenerateWorkout)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-workout", strings.NewReader(`{
		"age": 30,
		"gender": "男性",
		"goal": "筋肥大",
		"experience": "中級者",
		"equipment": "バーベル",
		"frequency": 3
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Result != "エラーが発生しました。" {
		t.Fatalf("unexpected result: %q", body.Result)
	}
}

func TestGenerateWorkoutRejectsInvalidBody(t *testing.T) {
	completion := &stubCompletion{}
	handler := NewTrainerHandler(&stubGenerationService{}, completion, &stubAudit{})

	app := fiber.New()
	app.Post("/api/generate-workout", handler.GenerateWorkout)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-workout", strings.NewReader(`{
		"age": 0,
		"frequency": 3
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if completion.calls != 0 {
		t.Fatalf("expected no completion call, got %d", completion.calls)
	}
}

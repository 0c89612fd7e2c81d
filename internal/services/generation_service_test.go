package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
)

type stubTrainingRequestStore struct {
	createErr   error
	getResult   *models.TrainingRequest
	getErr      error
	deleteOK    bool
	deleteErr   error
	createCalls int
	deleteCalls int
	lastInput   repository.CreateTrainingRequestInput
}

func (s *stubTrainingRequestStore) Create(_ context.Context, input repository.CreateTrainingRequestInput) (*models.TrainingRequest, error) {
	s.createCalls++
	s.lastInput = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.TrainingRequest{
		ID:     1,
		UserID: input.UserID,
		Name:   input.Name,
		Prompt: input.Prompt,
	}, nil
}

func (s *stubTrainingRequestStore) ListByUserID(_ context.Context, userID int64) ([]models.TrainingRequest, error) {
	return []models.TrainingRequest{}, nil
}

func (s *stubTrainingRequestStore) GetByID(_ context.Context, _ int64) (*models.TrainingRequest, error) {
	return s.getResult, s.getErr
}

func (s *stubTrainingRequestStore) Delete(_ context.Context, _ int64) (bool, error) {
	s.deleteCalls++
	return s.deleteOK, s.deleteErr
}

func TestBuildTrainingPromptSubstitutesFields(t *testing.T) {
	prompt := BuildTrainingPrompt(TrainingPromptInput{
		Name:       "Taro",
		Age:        30,
		Gender:     "男性",
		Goal:       "減量",
		Experience: "初心者",
		Equipment:  "ダンベル",
		Concerns:   "腰痛",
	})

	for _, want := range []string{"- 名前: Taro", "- 年齢: 30", "- 性別: 男性", "- 目的: 減量", "- トレーニング経験: 初心者", "- 利用可能な器具: ダンベル", "- 特別な悩み・配慮すべき点: 腰痛"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildWorkoutPromptDefaultsConcern(t *testing.T) {
	prompt := BuildWorkoutPrompt(WorkoutPromptInput{
		Age:        30,
		Gender:     "男性",
		Goal:       "筋肥大",
		Experience: "中級者",
		Equipment:  "バーベル",
		Frequency:  3,
	})

	if !strings.Contains(prompt, "週3回") {
		t.Fatalf("prompt missing frequency:\n%s", prompt)
	}
	if !strings.Contains(prompt, "特別な悩み・配慮すべき点: 特になし") {
		t.Fatalf("expected default concern:\n%s", prompt)
	}
}

func TestCreateRequestWithoutUserWritesNothing(t *testing.T) {
	store := &stubTrainingRequestStore{}
	service := NewGenerationService(store)

	_, err := service.CreateRequest(context.Background(), 0, TrainingPromptInput{Name: "Taro"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if store.createCalls != 0 {
		t.Fatalf("expected no store call, got %d", store.createCalls)
	}
}

func TestCreateRequestPersistsPrompt(t *testing.T) {
	store := &stubTrainingRequestStore{}
	service := NewGenerationService(store)

	request, err := service.CreateRequest(context.Background(), 42, TrainingPromptInput{
		Name:       "Taro",
		Age:        30,
		Gender:     "男性",
		Goal:       "減量",
		Experience: "初心者",
		Equipment:  "ダンベル",
	})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if store.lastInput.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", store.lastInput.UserID)
	}
	if !strings.Contains(request.Prompt, "- 名前: Taro") {
		t.Fatalf("persisted prompt missing fields:\n%s", request.Prompt)
	}
}

func TestDeleteRequestEnforcesOwnership(t *testing.T) {
	store := &stubTrainingRequestStore{
		getResult: &models.TrainingRequest{ID: 11, UserID: 7},
	}
	service := NewGenerationService(store)

	err := service.DeleteRequest(context.Background(), 42, 11)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if store.deleteCalls != 0 {
		t.Fatalf("expected no delete call, got %d", store.deleteCalls)
	}
}

func TestDeleteRequestMissingRowReturnsNoRows(t *testing.T) {
	store := &stubTrainingRequestStore{getErr: pgx.ErrNoRows}
	service := NewGenerationService(store)

	err := service.DeleteRequest(context.Background(), 42, 11)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
)

const trainerSystemPrompt = "あなたは熟練のパーソナルトレーナーです。"

type trainingRequestStore interface {
	Create(ctx context.Context, input repository.CreateTrainingRequestInput) (*models.TrainingRequest, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.TrainingRequest, error)
	GetByID(ctx context.Context, id int64) (*models.TrainingRequest, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// GenerationService builds training-plan prompts by direct field substitution
// into fixed templates and manages the persisted request history.
type GenerationService struct {
	requests trainingRequestStore
}

func NewGenerationService(requests trainingRequestStore) *GenerationService {
	return &GenerationService{requests: requests}
}

type TrainingPromptInput struct {
	Name       string
	Age        int
	Gender     string
	Goal       string
	Experience string
	Equipment  string
	Concerns   string
}

// BuildTrainingPrompt renders the Markdown prompt persisted with each
// training request.
func BuildTrainingPrompt(input TrainingPromptInput) string {
	return fmt.Sprintf(`あなたは優秀なパーソナルトレーナーです。以下の顧客情報をもとに、個別最適化されたトレーニングメニュー（週3回）を日本語でMarkdown形式で提案してください。

# 顧客情報
- 名前: %s
- 年齢: %d
- 性別: %s
- 目的: %s
- トレーニング経験: %s
- 利用可能な器具: %s
- 特別な悩み・配慮すべき点: %s

# 出力形式
- タイトル（顧客名入り）
- 概要（目的や配慮点に基づいた戦略）
- 日別トレーニングメニュー（3日分）
- アドバイス`,
		input.Name,
		input.Age,
		input.Gender,
		input.Goal,
		input.Experience,
		input.Equipment,
		input.Concerns,
	)
}

type WorkoutPromptInput struct {
	Age        int
	Gender     string
	Goal       string
	Experience string
	Equipment  string
	Frequency  int
	Concern    string
}

// BuildWorkoutPrompt renders the prompt forwarded to the completion provider
// by the generate-workout endpoint.
func BuildWorkoutPrompt(input WorkoutPromptInput) string {
	concern := strings.TrimSpace(input.Concern)
	if concern == "" {
		concern = "特になし"
	}

	return fmt.Sprintf(`あなたはプロのパーソナルトレーナーです。
以下の条件に基づいて、週%d回のトレーニングメニューを提案してください。

- 年齢: %d
- 性別: %s
- 目的: %s
- 運動経験: %s
- 利用可能な器具: %s
- 特別な悩み・配慮すべき点: %s

1日あたりのメニューを、曜日ごとにわかりやすく分けてください。`,
		input.Frequency,
		input.Age,
		input.Gender,
		input.Goal,
		input.Experience,
		input.Equipment,
		concern,
	)
}

// TrainerSystemPrompt is the system message sent alongside generated prompts.
func TrainerSystemPrompt() string {
	return trainerSystemPrompt
}

func (s *GenerationService) CreateRequest(ctx context.Context, userID int64, input TrainingPromptInput) (*models.TrainingRequest, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}

	prompt := BuildTrainingPrompt(input)
	return s.requests.Create(ctx, repository.CreateTrainingRequestInput{
		UserID:     userID,
		Name:       input.Name,
		Age:        input.Age,
		Gender:     input.Gender,
		Goal:       input.Goal,
		Experience: input.Experience,
		Equipment:  input.Equipment,
		Concerns:   input.Concerns,
		Prompt:     prompt,
	})
}

func (s *GenerationService) ListRequests(ctx context.Context, userID int64) ([]models.TrainingRequest, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.requests.ListByUserID(ctx, userID)
}

func (s *GenerationService) DeleteRequest(ctx context.Context, actorID int64, requestID int64) error {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.UserID != actorID {
		return ErrForbidden
	}

	deleted, err := s.requests.Delete(ctx, requestID)
	if err != nil {
		return err
	}
	if !deleted {
		return pgx.ErrNoRows
	}
	return nil
}

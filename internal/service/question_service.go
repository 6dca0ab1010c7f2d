// Package service holds the business rules between the HTTP handlers and the
// repositories.
package service

import (
	"context"
	"strings"

	"quorum/internal/middleware"
	"quorum/internal/models"
	"quorum/internal/repository"
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
}

type CreateQuestionInput struct {
	Text       string
	CategoryID *uint
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*models.Question, error) {
	const maxTextLen = 500

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Question text is required")
	}
	if len(text) > maxTextLen {
		return nil, models.NewValidationError("Question text too long (max 500 characters)")
	}

	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	question := &models.Question{
		Text:       text,
		CategoryID: in.CategoryID,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByID(ctx, question.ID)
}

// GetActiveQuestion returns (nil, nil) when no question is currently active.
func (s *QuestionService) GetActiveQuestion(ctx context.Context) (*models.Question, error) {
	return s.questionRepo.GetActive(ctx)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// ActivateQuestion makes the given question the single active one.
func (s *QuestionService) ActivateQuestion(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.questionRepo.Activate(ctx, id)
	if err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "question activated", "question_id", question.ID)
	return question, nil
}

func (s *QuestionService) ListQuestions(ctx context.Context, limit, offset int) ([]models.Question, error) {
	return s.questionRepo.List(ctx, limit, offset)
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	return s.questionRepo.Delete(ctx, id)
}

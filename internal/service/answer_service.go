package service

import (
	"context"
	"strings"

	"quorum/internal/middleware"
	"quorum/internal/models"
	"quorum/internal/repository"
)

type AnswerService struct {
	answerRepo   repository.AnswerRepository
	activityRepo repository.ActivityRepository
}

type SubmitAnswerInput struct {
	UserID     uint
	AuthorName string
	Text       string
}

type EditAnswerInput struct {
	UserID   uint
	AnswerID uint
	Text     string
	IsAdmin  bool
}

type ListAnswersInput struct {
	QuestionID    *uint
	UserID        *uint
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewAnswerService(
	answerRepo repository.AnswerRepository,
	activityRepo repository.ActivityRepository,
) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		activityRepo: activityRepo,
	}
}

const maxAnswerLen = 10000
const maxAuthorNameLen = 100

// SubmitAnswer records an answer against the currently active question.
func (s *AnswerService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput) (*models.Answer, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Answer text is required")
	}
	if len(text) > maxAnswerLen {
		return nil, models.NewValidationError("Answer text too long (max 10000 characters)")
	}

	authorName := strings.TrimSpace(in.AuthorName)
	if len(authorName) > maxAuthorNameLen {
		return nil, models.NewValidationError("Author name too long (max 100 characters)")
	}

	answer := &models.Answer{
		UserID:     in.UserID,
		AuthorName: authorName,
		Text:       text,
	}
	if err := s.answerRepo.CreateForActiveQuestion(ctx, answer); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, in.UserID, models.ActivityAnswerSubmitted, answer.ID)
	return s.answerRepo.GetByID(ctx, answer.ID, in.UserID)
}

// EditAnswer updates the text of an answer. Only the author or an admin may
// edit; edited answers are flagged.
func (s *AnswerService) EditAnswer(ctx context.Context, in EditAnswerInput) (*models.Answer, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Answer text is required")
	}
	if len(text) > maxAnswerLen {
		return nil, models.NewValidationError("Answer text too long (max 10000 characters)")
	}

	answer, err := s.answerRepo.GetByID(ctx, in.AnswerID, in.UserID)
	if err != nil {
		return nil, err
	}
	if answer.UserID != in.UserID && !in.IsAdmin {
		return nil, models.NewUnauthorizedError("You can only edit your own answers")
	}

	answer.Text = text
	answer.IsEdited = true
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, in.UserID, models.ActivityAnswerEdited, answer.ID)
	return answer, nil
}

// ToggleLike flips the caller's like on an answer.
func (s *AnswerService) ToggleLike(ctx context.Context, userID, answerID uint) (liked bool, likes int64, err error) {
	liked, likes, err = s.answerRepo.ToggleLike(ctx, userID, answerID)
	if err != nil {
		return false, 0, err
	}
	s.recordActivity(ctx, userID, models.ActivityLikeToggled, answerID)
	return liked, likes, nil
}

func (s *AnswerService) ListAnswers(ctx context.Context, in ListAnswersInput) ([]models.Answer, error) {
	if in.QuestionID != nil && in.UserID == nil {
		return s.answerRepo.ListByQuestion(ctx, *in.QuestionID, in.Limit, in.Offset, in.CurrentUserID)
	}
	filter := repository.AnswerFilter{
		QuestionID: in.QuestionID,
		UserID:     in.UserID,
	}
	return s.answerRepo.ListAll(ctx, filter, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *AnswerService) SearchAnswers(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]models.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.answerRepo.Search(ctx, query, limit, offset, currentUserID)
}

// recordActivity appends to the activity log. Failures are logged, never
// surfaced: the log is advisory and must not fail the main operation.
func (s *AnswerService) recordActivity(ctx context.Context, userID uint, action string, subjectID uint) {
	if s.activityRepo == nil {
		return
	}
	activity := &models.UserActivity{
		UserID:    userID,
		Action:    action,
		SubjectID: &subjectID,
	}
	if err := s.activityRepo.Record(ctx, activity); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record activity", "action", action, "error", err)
	}
}

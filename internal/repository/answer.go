package repository

import (
	"context"
	"errors"

	"quorum/internal/cache"
	"quorum/internal/middleware"
	"quorum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnswerFilter narrows answer listings.
type AnswerFilter struct {
	QuestionID *uint
	UserID     *uint
}

// AnswerRepository defines persistence operations for answers and likes.
type AnswerRepository interface {
	// CreateForActiveQuestion attaches the answer to the currently active
	// question and inserts it in one transaction. Returns a
	// NO_ACTIVE_QUESTION error when no question is active.
	CreateForActiveQuestion(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id, currentUserID uint) (*models.Answer, error)
	Update(ctx context.Context, answer *models.Answer) error
	ListByQuestion(ctx context.Context, questionID uint, limit, offset int, currentUserID uint) ([]models.Answer, error)
	ListAll(ctx context.Context, filter AnswerFilter, limit, offset int, currentUserID uint) ([]models.Answer, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]models.Answer, error)
	// ToggleLike flips the caller's like on an answer and returns the new
	// state together with the resulting like count.
	ToggleLike(ctx context.Context, userID, answerID uint) (liked bool, likes int64, err error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository returns a new AnswerRepository implementation.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

// applyAnswerDetails adds computed like columns to an answer query.
// likes_count is the total likes, liked whether currentUserID has liked it.
func applyAnswerDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	return db.
		Select("answers.*, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.answer_id = answers.id) as likes_count, "+
			"EXISTS(SELECT 1 FROM likes WHERE likes.answer_id = answers.id AND likes.user_id = ?) as liked",
			currentUserID)
}

func (r *answerRepository) CreateForActiveQuestion(ctx context.Context, answer *models.Answer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		err := tx.Where("is_active = ?", true).Order("id ASC").First(&question).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNoActiveQuestionError()
			}
			return models.NewInternalError(err)
		}

		answer.QuestionID = question.ID
		if answer.AuthorName == "" {
			answer.AuthorName = models.DefaultAuthorName
		}
		if err := tx.Create(answer).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateAnswers(ctx, answer.QuestionID)
	middleware.AnswersSubmitted.Inc()
	return nil
}

func (r *answerRepository) GetByID(ctx context.Context, id, currentUserID uint) (*models.Answer, error) {
	var answer models.Answer
	err := applyAnswerDetails(r.db.WithContext(ctx), currentUserID).First(&answer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Answer", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &answer, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *models.Answer) error {
	if err := r.db.WithContext(ctx).Save(answer).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAnswers(ctx, answer.QuestionID)
	return nil
}

// DefaultAnswersPageSize is the page size the answers endpoint serves when
// the client does not ask for one; only this page is cached.
const DefaultAnswersPageSize = 20

func (r *answerRepository) ListByQuestion(ctx context.Context, questionID uint, limit, offset int, currentUserID uint) ([]models.Answer, error) {
	var answers []models.Answer
	fetch := func() error {
		err := applyAnswerDetails(r.db.WithContext(ctx), currentUserID).
			Where("answers.question_id = ?", questionID).
			Order("answers.created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&answers).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}

	// Only the anonymous first page is cacheable: the liked column is
	// per user, so authenticated reads always go to the database.
	if currentUserID == 0 && offset == 0 && limit == DefaultAnswersPageSize {
		if err := cache.Aside(ctx, cache.AnswersKey(questionID), &answers, cache.AnswersTTL, fetch); err != nil {
			return nil, err
		}
		return answers, nil
	}

	if err := fetch(); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) ListAll(ctx context.Context, filter AnswerFilter, limit, offset int, currentUserID uint) ([]models.Answer, error) {
	var answers []models.Answer
	query := applyAnswerDetails(r.db.WithContext(ctx), currentUserID)
	if filter.QuestionID != nil {
		query = query.Where("answers.question_id = ?", *filter.QuestionID)
	}
	if filter.UserID != nil {
		query = query.Where("answers.user_id = ?", *filter.UserID)
	}
	err := query.
		Order("answers.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&answers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}

func (r *answerRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]models.Answer, error) {
	var answers []models.Answer
	pattern := "%" + query + "%"
	err := applyAnswerDetails(r.db.WithContext(ctx), currentUserID).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.text ILIKE ? OR answers.author_name ILIKE ? OR questions.text ILIKE ?",
			pattern, pattern, pattern).
		Order("answers.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&answers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return answers, nil
}

func (r *answerRepository) ToggleLike(ctx context.Context, userID, answerID uint) (bool, int64, error) {
	var (
		liked      bool
		likes      int64
		questionID uint
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var answer models.Answer
		if err := tx.Select("id", "question_id").First(&answer, answerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Answer", answerID)
			}
			return models.NewInternalError(err)
		}
		questionID = answer.QuestionID

		// The unique (user_id, answer_id) index makes the insert race-safe:
		// a conflicting insert affects zero rows and we unlike instead.
		like := models.Like{UserID: userID, AnswerID: answerID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "answer_id"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}

		if res.RowsAffected > 0 {
			liked = true
		} else {
			if err := tx.Where("user_id = ? AND answer_id = ?", userID, answerID).
				Delete(&models.Like{}).Error; err != nil {
				return models.NewInternalError(err)
			}
			liked = false
		}

		if err := tx.Model(&models.Like{}).
			Where("answer_id = ?", answerID).
			Count(&likes).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	cache.InvalidateAnswers(ctx, questionID)
	if liked {
		middleware.LikesToggled.WithLabelValues("liked").Inc()
	} else {
		middleware.LikesToggled.WithLabelValues("unliked").Inc()
	}
	return liked, likes, nil
}

package repository

import (
	"context"
	"errors"

	"quorum/internal/cache"
	"quorum/internal/middleware"
	"quorum/internal/models"

	"gorm.io/gorm"
)

// QuestionRepository defines persistence operations for questions and categories.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	// GetActive returns the currently active question, or (nil, nil) when no
	// question is active.
	GetActive(ctx context.Context) (*models.Question, error)
	// Activate marks the given question active and deactivates every other
	// question in the same transaction.
	Activate(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	List(ctx context.Context, limit, offset int) ([]models.Question, error)
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository returns a new QuestionRepository implementation.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// applyQuestionDetails adds the computed answers_count column to a question query.
func applyQuestionDetails(db *gorm.DB) *gorm.DB {
	return db.
		Select("questions.*, (SELECT COUNT(*) FROM answers WHERE answers.question_id = questions.id) as answers_count").
		Preload("Category")
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Create(question).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := applyQuestionDetails(r.db.WithContext(ctx)).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Question", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &question, nil
}

func (r *questionRepository) GetActive(ctx context.Context) (*models.Question, error) {
	var question models.Question

	err := cache.Aside(ctx, cache.ActiveQuestionKey, &question, cache.ActiveQuestionTTL, func() error {
		// Oldest id wins if bad data ever leaves more than one row active, so
		// every reader sees the same question.
		err := applyQuestionDetails(r.db.WithContext(ctx)).
			Where("questions.is_active = ?", true).
			Order("questions.id ASC").
			First(&question).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) Activate(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Question", id)
			}
			return models.NewInternalError(err)
		}

		// Both updates commit atomically; concurrent activations serialize on
		// the row locks and the loser's deactivate sweep covers the winner.
		if err := tx.Model(&models.Question{}).
			Where("id <> ? AND is_active = ?", id, true).
			Update("is_active", false).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&question).Update("is_active", true).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateActiveQuestion(ctx)
	middleware.QuestionActivations.Inc()
	return &question, nil
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	if err := r.db.WithContext(ctx).Save(question).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateActiveQuestion(ctx)
	return nil
}

func (r *questionRepository) List(ctx context.Context, limit, offset int) ([]models.Question, error) {
	var questions []models.Question
	err := applyQuestionDetails(r.db.WithContext(ctx)).
		Order("questions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Question", id)
			}
			return models.NewInternalError(err)
		}

		// Remove dependent rows explicitly so the delete does not rely on
		// database-level cascade support.
		subQuery := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", id)
		if err := tx.Where("answer_id IN (?)", subQuery).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&question).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateActiveQuestion(ctx)
	cache.InvalidateAnswers(ctx, id)
	return nil
}

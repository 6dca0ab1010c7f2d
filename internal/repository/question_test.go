package repository

import (
	"context"
	"regexp"
	"testing"

	"quorum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestQuestionRepository_GetActive(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "text", "is_active", "answers_count"}).
			AddRow(3, "What is your favorite language?", true, 12)
		mock.ExpectQuery(`SELECT questions\..*answers_count FROM "questions" WHERE questions\.is_active = \$1 ORDER BY questions\.id ASC`).
			WithArgs(true, 1).
			WillReturnRows(rows)

		question, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.Equal(t, uint(3), question.ID)
		assert.Equal(t, 12, question.AnswersCount)
		assert.True(t, question.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Active Question Returns Nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT questions\..*answers_count FROM "questions" WHERE questions\.is_active = \$1 ORDER BY questions\.id ASC`).
			WithArgs(true, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		question, err := repo.GetActive(ctx)
		assert.NoError(t, err)
		assert.Nil(t, question)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuestionRepository_Activate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	t.Run("Deactivates Others And Activates Target", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "questions" WHERE "questions"."id" = $1 ORDER BY "questions"."id" LIMIT $2`)).
			WithArgs(5, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "text", "is_active"}).
				AddRow(5, "New prompt", false))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "questions" SET "is_active"=$1,"updated_at"=$2 WHERE id <> $3 AND is_active = $4`)).
			WithArgs(false, sqlmock.AnyArg(), 5, true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "questions" SET "is_active"=$1,"updated_at"=$2 WHERE "id" = $3`)).
			WithArgs(true, sqlmock.AnyArg(), 5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		question, err := repo.Activate(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, question)
		assert.Equal(t, uint(5), question.ID)
		assert.True(t, question.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found Rolls Back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "questions" WHERE "questions"."id" = $1 ORDER BY "questions"."id" LIMIT $2`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		question, err := repo.Activate(ctx, 99)
		assert.Nil(t, question)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuestionRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewQuestionRepository(db)
	ctx := context.Background()

	t.Run("Removes Likes And Answers First", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "questions" WHERE "questions"."id" = $1 ORDER BY "questions"."id" LIMIT $2`)).
			WithArgs(7, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "text"}).AddRow(7, "Old prompt"))
		mock.ExpectExec(`DELETE FROM "likes" WHERE answer_id IN`).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "answers" WHERE question_id = $1`)).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "questions" WHERE "questions"."id" = $1`)).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, 7)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "questions" WHERE "questions"."id" = $1 ORDER BY "questions"."id" LIMIT $2`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		err := repo.Delete(ctx, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quorum/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func submitAnswerReq(text, authorName string) *http.Request {
	body, _ := json.Marshal(map[string]string{"text": text, "author_name": authorName})
	req := httptest.NewRequest(http.MethodPost, "/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmitAnswer_NoActiveQuestion(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	user := createTestUser(t, db, "writer")
	require.NoError(t, db.Create(&models.Question{Text: "Dormant"}).Error)

	app.Post("/answers", withUser(user.ID, s.SubmitAnswer))

	resp, err := app.Test(submitAnswerReq("no home for this", ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, models.ErrCodeNoActiveQuestion, errResp.Code)

	var count int64
	require.NoError(t, db.Model(&models.Answer{}).Count(&count).Error)
	assert.Zero(t, count, "rejected submission must not create a row")
}

func TestSubmitAnswer_AttachesToActiveQuestion(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	user := createTestUser(t, db, "writer2")
	inactive := models.Question{Text: "Old"}
	require.NoError(t, db.Create(&inactive).Error)
	active := models.Question{Text: "Current", IsActive: true}
	require.NoError(t, db.Create(&active).Error)

	app.Post("/answers", withUser(user.ID, s.SubmitAnswer))

	resp, err := app.Test(submitAnswerReq("  my take  ", ""))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var answer models.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answer))
	assert.Equal(t, active.ID, answer.QuestionID)
	assert.Equal(t, "my take", answer.Text)
	assert.Equal(t, models.DefaultAuthorName, answer.AuthorName)

	// Activity trail records the submission.
	var activity models.UserActivity
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&activity).Error)
	assert.Equal(t, models.ActivityAnswerSubmitted, activity.Action)
}

func TestGetAnswers_DefaultsToActiveQuestion(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	user := createTestUser(t, db, "reader")
	old := models.Question{Text: "Old"}
	require.NoError(t, db.Create(&old).Error)
	active := models.Question{Text: "Current", IsActive: true}
	require.NoError(t, db.Create(&active).Error)

	require.NoError(t, db.Create(&models.Answer{
		QuestionID: old.ID, UserID: user.ID, AuthorName: "reader", Text: "stale",
	}).Error)
	require.NoError(t, db.Create(&models.Answer{
		QuestionID: active.ID, UserID: user.ID, AuthorName: "reader", Text: "fresh",
	}).Error)

	app.Get("/answers", s.GetAnswers)

	req := httptest.NewRequest(http.MethodGet, "/answers", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var answers []models.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answers))
	require.Len(t, answers, 1)
	assert.Equal(t, "fresh", answers[0].Text)
}

func TestGetAnswers_EmptyWhenNothingActive(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	app.Get("/answers", s.GetAnswers)

	req := httptest.NewRequest(http.MethodGet, "/answers", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var answers []models.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answers))
	assert.Empty(t, answers)
}

func TestToggleLike_Flow(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	question := models.Question{Text: "Current", IsActive: true}
	require.NoError(t, db.Create(&question).Error)
	answer := models.Answer{QuestionID: question.ID, UserID: author.ID, AuthorName: "author", Text: "likeable"}
	require.NoError(t, db.Create(&answer).Error)

	app.Post("/answers/:id/like", withUser(liker.ID, s.ToggleLike))

	toggle := func() (bool, int64) {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/answers/%d/like", answer.ID), nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Liked      bool  `json:"liked"`
			LikesCount int64 `json:"likes_count"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		return payload.Liked, payload.LikesCount
	}

	liked, count := toggle()
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	// Second toggle by the same user removes the like.
	liked, count = toggle()
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	t.Run("unknown answer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/answers/999/like", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestEditAnswer_Authorization(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	author := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "intruder")
	admin := models.User{Username: "mod", Email: "mod@example.com", Password: "x", IsAdmin: true}
	require.NoError(t, db.Create(&admin).Error)

	question := models.Question{Text: "Current", IsActive: true}
	require.NoError(t, db.Create(&question).Error)
	answer := models.Answer{QuestionID: question.ID, UserID: author.ID, AuthorName: "owner", Text: "original"}
	require.NoError(t, db.Create(&answer).Error)

	app.Put("/answers/:id", func(c *fiber.Ctx) error {
		c.Locals("userID", uint(c.QueryInt("as")))
		return s.EditAnswer(c)
	})

	edit := func(asUser uint, text string) *http.Response {
		body, _ := json.Marshal(map[string]string{"text": text})
		req := httptest.NewRequest(http.MethodPut,
			fmt.Sprintf("/answers/%d?as=%d", answer.ID, asUser), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("non-author forbidden", func(t *testing.T) {
		resp := edit(other.ID, "hijacked")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("author can edit", func(t *testing.T) {
		resp := edit(author.ID, "revised")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Answer
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
		assert.Equal(t, "revised", updated.Text)
		assert.True(t, updated.IsEdited)
	})

	t.Run("admin can edit", func(t *testing.T) {
		resp := edit(admin.ID, "moderated")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestGetAllAnswers_Filters(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	q1 := models.Question{Text: "First"}
	require.NoError(t, db.Create(&q1).Error)
	q2 := models.Question{Text: "Second", IsActive: true}
	require.NoError(t, db.Create(&q2).Error)

	require.NoError(t, db.Create(&models.Answer{QuestionID: q1.ID, UserID: alice.ID, AuthorName: "alice", Text: "a1"}).Error)
	require.NoError(t, db.Create(&models.Answer{QuestionID: q2.ID, UserID: alice.ID, AuthorName: "alice", Text: "a2"}).Error)
	require.NoError(t, db.Create(&models.Answer{QuestionID: q2.ID, UserID: bob.ID, AuthorName: "bob", Text: "b1"}).Error)

	app.Get("/all-answers", s.GetAllAnswers)

	fetch := func(query string) []models.Answer {
		req := httptest.NewRequest(http.MethodGet, "/all-answers"+query, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var answers []models.Answer
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&answers))
		return answers
	}

	assert.Len(t, fetch(""), 3)
	assert.Len(t, fetch(fmt.Sprintf("?question_id=%d", q2.ID)), 2)
	assert.Len(t, fetch(fmt.Sprintf("?user_id=%d", alice.ID)), 2)
	assert.Len(t, fetch(fmt.Sprintf("?question_id=%d&user_id=%d", q2.ID, bob.ID)), 1)
}

func TestGetStats(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	app := fiber.New()

	user := createTestUser(t, db, "counter")
	question := models.Question{Text: "Counted", IsActive: true}
	require.NoError(t, db.Create(&question).Error)
	answer := models.Answer{QuestionID: question.ID, UserID: user.ID, AuthorName: "counter", Text: "one"}
	require.NoError(t, db.Create(&answer).Error)
	require.NoError(t, db.Create(&models.Like{UserID: user.ID, AnswerID: answer.ID}).Error)

	app.Get("/stats", s.GetStats)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats models.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, int64(1), stats.TotalQuestions)
	assert.Equal(t, int64(1), stats.TotalAnswers)
	assert.Equal(t, int64(1), stats.TotalLikes)
	assert.Equal(t, int64(1), stats.ActiveUsersToday)
}

// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"quorum/internal/models"
	"quorum/internal/repository"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitAnswer handles POST /api/answers. The answer is recorded against
// whichever question is active at commit time.
func (s *Server) SubmitAnswer(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Text       string `json:"text"`
		AuthorName string `json:"author_name,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	answer, err := s.answerService.SubmitAnswer(ctx, service.SubmitAnswerInput{
		UserID:     userID,
		AuthorName: req.AuthorName,
		Text:       req.Text,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(answer)
}

// GetAnswers handles GET /api/answers. Without a question_id filter it
// returns the answers for the currently active question.
func (s *Server) GetAnswers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, repository.DefaultAnswersPageSize)
	currentUserID, _ := s.optionalUserID(c)

	var questionID *uint
	if qid := c.QueryInt("question_id", 0); qid > 0 {
		id := uint(qid)
		questionID = &id
	} else {
		active, err := s.questionService.GetActiveQuestion(ctx)
		if err != nil {
			return respondServiceError(c, err)
		}
		if active == nil {
			return c.JSON([]models.Answer{})
		}
		questionID = &active.ID
	}

	answers, err := s.answerService.ListAnswers(ctx, service.ListAnswersInput{
		QuestionID:    questionID,
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: currentUserID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(answers)
}

// GetAllAnswers handles GET /api/all-answers, the cross-question archive.
func (s *Server) GetAllAnswers(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, repository.DefaultAnswersPageSize)
	currentUserID, _ := s.optionalUserID(c)

	in := service.ListAnswersInput{
		Limit:         page.Limit,
		Offset:        page.Offset,
		CurrentUserID: currentUserID,
	}
	if qid := c.QueryInt("question_id", 0); qid > 0 {
		id := uint(qid)
		in.QuestionID = &id
	}
	if uid := c.QueryInt("user_id", 0); uid > 0 {
		id := uint(uid)
		in.UserID = &id
	}

	answers, err := s.answerService.ListAnswers(ctx, in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(answers)
}

// SearchAnswers handles GET /api/search?q=...
func (s *Server) SearchAnswers(c *fiber.Ctx) error {
	ctx := c.Context()
	q := c.Query("q")
	page := parsePagination(c, 10)
	currentUserID, _ := s.optionalUserID(c)

	answers, err := s.answerService.SearchAnswers(ctx, q, page.Limit, page.Offset, currentUserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(answers)
}

// EditAnswer handles PUT /api/answers/:id
func (s *Server) EditAnswer(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	admin, adminErr := s.isAdmin(c, userID)
	if adminErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(adminErr))
	}

	answer, svcErr := s.answerService.EditAnswer(c.Context(), service.EditAnswerInput{
		UserID:   userID,
		AnswerID: id,
		Text:     req.Text,
		IsAdmin:  admin,
	})
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(answer)
}

// ToggleLike handles POST /api/answers/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := c.Locals("userID").(uint)

	liked, likes, svcErr := s.answerService.ToggleLike(c.Context(), userID, id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{
		"liked":       liked,
		"likes_count": likes,
	})
}

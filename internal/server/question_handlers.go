// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetActiveQuestion handles GET /api/active-question. When no question is
// active the response is 200 with a null question rather than an error.
func (s *Server) GetActiveQuestion(c *fiber.Ctx) error {
	ctx := c.Context()

	question, err := s.questionService.GetActiveQuestion(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"question": question,
	})
}

// GetQuestions handles GET /api/questions
func (s *Server) GetQuestions(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, 20)

	questions, err := s.questionService.ListQuestions(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(questions)
}

// GetQuestion handles GET /api/questions/:id
func (s *Server) GetQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	question, err := s.questionService.GetQuestion(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(question)
}

// CreateQuestion handles POST /api/questions
func (s *Server) CreateQuestion(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Text       string `json:"text"`
		CategoryID *uint  `json:"category_id,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	question, err := s.questionService.CreateQuestion(ctx, service.CreateQuestionInput{
		Text:       req.Text,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(question)
}

// ActivateQuestion handles POST /api/questions/:id/activate
func (s *Server) ActivateQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	question, svcErr := s.questionService.ActivateQuestion(c.Context(), id)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(question)
}

// DeleteQuestion handles DELETE /api/questions/:id
func (s *Server) DeleteQuestion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.questionService.DeleteQuestion(c.Context(), id); svcErr != nil {
		return respondServiceError(c, svcErr)
	}

	return c.JSON(fiber.Map{"message": "Question deleted"})
}

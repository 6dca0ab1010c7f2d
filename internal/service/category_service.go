package service

import (
	"context"
	"regexp"
	"strings"

	"quorum/internal/models"
	"quorum/internal/repository"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	const maxNameLen = 60
	const maxDescriptionLen = 300

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Category name is required")
	}
	if len(name) > maxNameLen {
		return nil, models.NewValidationError("Category name too long (max 60 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 300 characters)")
	}
	if in.Color != "" && !hexColorRe.MatchString(in.Color) {
		return nil, models.NewValidationError("Color must be a hex value like #1a2b3c")
	}

	category := &models.Category{
		Name:        name,
		Description: in.Description,
		Color:       in.Color,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

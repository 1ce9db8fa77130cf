package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	cat := model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, &cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("category name already exists")
		}
		return nil, apierror.Internal(err)
	}
	return categoryToResponse(&cat), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, *categoryToResponse(&cats[i]))
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("category not found")
	}
	return categoryToResponse(cat), nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("category not found")
	}
	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.Description != nil {
		cat.Description = req.Description
	}
	if req.Active != nil {
		cat.Active = *req.Active
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("category name already exists")
		}
		return nil, apierror.Internal(err)
	}
	return categoryToResponse(cat), nil
}

func (s *categoryService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("category not found")
	}
	return s.repo.Deactivate(ctx, id)
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

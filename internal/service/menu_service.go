package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/prajapatkavitha/restaurant-management-project/internal/apierror"
	"github.com/prajapatkavitha/restaurant-management-project/internal/dto"
	"github.com/prajapatkavitha/restaurant-management-project/internal/model"
	"github.com/prajapatkavitha/restaurant-management-project/internal/repository"
)

const (
	menuCacheKey = "cache:menu:active"
	menuCacheTTL = 10 * time.Minute
)

type MenuService interface {
	CreateItem(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error)
	ListItems(ctx context.Context, activeOnly bool) ([]dto.MenuItemResponse, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	RemoveItem(ctx context.Context, id uuid.UUID) error
}

type menuService struct {
	repo         repository.MenuRepository
	categoryRepo repository.CategoryRepository
	rdb          *redis.Client
}

func NewMenuService(repo repository.MenuRepository, categoryRepo repository.CategoryRepository, rdb *redis.Client) MenuService {
	return &menuService{repo: repo, categoryRepo: categoryRepo, rdb: rdb}
}

func (s *menuService) CreateItem(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	cid, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apierror.Validation("invalid category_id")
	}
	cat, err := s.categoryRepo.FindByID(ctx, cid)
	if err != nil {
		return nil, apierror.Validation("category not found")
	}
	if req.Price.IsNegative() {
		return nil, apierror.Validation("price must not be negative")
	}

	item := model.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  cat.ID,
		Active:      true,
		Category:    cat,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("menu item already exists")
		}
		return nil, apierror.Internal(err)
	}
	s.invalidateCache(ctx)
	return menuItemToResponse(&item), nil
}

func (s *menuService) GetItem(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("menu item not found")
	}
	return menuItemToResponse(item), nil
}

// ListItems serves the public menu (activeOnly) through a short-TTL Redis
// cache; staff listings bypass the cache.
func (s *menuService) ListItems(ctx context.Context, activeOnly bool) ([]dto.MenuItemResponse, error) {
	if activeOnly && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, menuCacheKey).Result(); err == nil {
			var out []dto.MenuItemResponse
			if json.Unmarshal([]byte(cached), &out) == nil {
				return out, nil
			}
		}
	}

	items, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *menuItemToResponse(&items[i]))
	}

	if activeOnly && s.rdb != nil {
		if body, err := json.Marshal(out); err == nil {
			if err := s.rdb.Set(ctx, menuCacheKey, body, menuCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("menu cache write failed")
			}
		}
	}
	return out, nil
}

func (s *menuService) UpdateItem(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("menu item not found")
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apierror.Validation("price must not be negative")
		}
		item.Price = *req.Price
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apierror.Validation("invalid category_id")
		}
		cat, err := s.categoryRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, apierror.Validation("category not found")
		}
		item.CategoryID = cat.ID
		item.Category = cat
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, apierror.Internal(err)
	}
	s.invalidateCache(ctx)
	return menuItemToResponse(item), nil
}

// RemoveItem deactivates rather than deletes: line items in past orders keep
// their menu reference.
func (s *menuService) RemoveItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("menu item not found")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return apierror.Internal(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *menuService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}

func menuItemToResponse(m *model.MenuItem) *dto.MenuItemResponse {
	resp := &dto.MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		CategoryID:  m.CategoryID,
		Active:      m.Active,
	}
	if m.Category != nil {
		resp.Category = m.Category.Name
	}
	return resp
}

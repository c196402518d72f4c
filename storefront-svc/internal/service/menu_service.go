package service

import (
	"context"
	"fmt"
	"log/slog"

	"jollof-hub/logger"
	"jollof-hub/storefront-svc/internal/domain"
	"jollof-hub/storefront-svc/internal/validation"
)

type MenuItemInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       validation.Number `json:"price"`
	Category    string            `json:"category"`
	ImageURL    *string           `json:"imageUrl"`
}

func (in MenuItemInput) toMenuItem() (*domain.MenuItem, error) {
	if err := validation.Required("name", in.Name); err != nil {
		return nil, err
	}
	if err := validation.Required("description", in.Description); err != nil {
		return nil, err
	}
	price, err := validation.Amount("price", in.Price)
	if err != nil {
		return nil, err
	}
	if err := validation.Required("category", in.Category); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       price,
		Category:    in.Category,
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		url := *in.ImageURL
		item.ImageURL = &url
	}
	return item, nil
}

type MenuService struct {
	repo  MenuRepository
	cache MenuCache
	log   *logger.Logger
}

func NewMenuService(repo MenuRepository, cache MenuCache, log *logger.Logger) *MenuService {
	return &MenuService{repo: repo, cache: cache, log: log}
}

func (s *MenuService) Create(ctx context.Context, input MenuItemInput) (*domain.MenuItem, error) {
	item, err := input.toMenuItem()
	if err != nil {
		return nil, invalid(err)
	}
	if err := s.repo.CreateMenuItem(ctx, item); err != nil {
		return nil, storeErr("create menu item", err)
	}
	s.invalidate(ctx)
	return item, nil
}

// List serves the menu from cache when possible. Cache failures fall back to
// the database.
func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	if s.cache != nil {
		items, ok, err := s.cache.GetMenu(ctx)
		if err != nil {
			s.log.Warn(ctx, "menu_cache", "menu cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return items, nil
		}
	}

	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, storeErr("list menu items", err)
	}

	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, items); err != nil {
			s.log.Warn(ctx, "menu_cache", "menu cache write failed", slog.String("error", err.Error()))
		}
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, storeErr("get menu item", err)
	}
	return item, nil
}

// Update replaces every editable field. Orders keep their own snapshot of the
// item, so they are unaffected.
func (s *MenuService) Update(ctx context.Context, id int, input MenuItemInput) (*domain.MenuItem, error) {
	item, err := input.toMenuItem()
	if err != nil {
		return nil, invalid(err)
	}
	item.ID = id
	if err := s.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, storeErr("update menu item", err)
	}
	s.invalidate(ctx)
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return storeErr("delete menu item", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete menu item %d: %w", id, ErrNotFound)
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMenu(ctx); err != nil {
		s.log.Warn(ctx, "menu_cache", "menu cache invalidation failed", slog.String("error", err.Error()))
	}
}

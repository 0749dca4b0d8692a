package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/menu"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/repository"
)

var ErrUnknownCategory = errors.New("unknown category")

// MenuService answers menu queries against the catalog
type MenuService struct {
	repo repository.DishRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.DishRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// Query returns the dishes visible for q. An empty result is not an error.
func (s *MenuService) Query(ctx context.Context, q menu.Query) ([]models.Dish, error) {
	if err := s.checkCategory(ctx, q.Category); err != nil {
		return nil, err
	}

	dishes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Derive(dishes, q), nil
}

func (s *MenuService) checkCategory(ctx context.Context, category string) error {
	if category == "" || category == menu.AllCategories {
		return nil
	}

	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID == category {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
}

// GetDish returns a dish by ID
func (s *MenuService) GetDish(ctx context.Context, id int64) (*models.Dish, error) {
	return s.repo.GetByID(ctx, id)
}

// Categories returns the catalog categories
func (s *MenuService) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	return s.repo.Categories(ctx)
}

// PopularHighlights returns the first few popular dishes
func (s *MenuService) PopularHighlights(ctx context.Context) ([]models.Dish, error) {
	dishes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return menu.PopularHighlights(dishes), nil
}

// ChefsSpecials returns every chef's special
func (s *MenuService) ChefsSpecials(ctx context.Context) ([]models.Dish, error) {
	dishes, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return menu.ChefsSpecials(dishes), nil
}

package repository

import (
	"context"
	"errors"
	"slices"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
)

var (
	ErrDishNotFound    = errors.New("dish not found")
	ErrPackageNotFound = errors.New("event package not found")
)

// DishRepository defines read access to the menu catalog
type DishRepository interface {
	GetAll(ctx context.Context) ([]models.Dish, error)
	GetByID(ctx context.Context, id int64) (*models.Dish, error)
	Categories(ctx context.Context) ([]models.CategorySummary, error)
}

// InMemoryDishRepository serves a catalog that was loaded once at start-up
type InMemoryDishRepository struct {
	dishes     []models.Dish
	byID       map[int64]int
	categories []models.CategorySummary
}

// NewInMemoryDishRepository flattens catalog into catalog-ordered dishes
func NewInMemoryDishRepository(catalog *models.Catalog) *InMemoryDishRepository {
	dishes := catalog.Dishes()

	byID := make(map[int64]int, len(dishes))
	for i, dish := range dishes {
		byID[dish.ID] = i
	}

	categories := make([]models.CategorySummary, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		categories = append(categories, models.CategorySummary{
			ID:        cat.ID,
			Name:      cat.Name,
			DishCount: len(cat.Dishes),
		})
	}

	return &InMemoryDishRepository{
		dishes:     dishes,
		byID:       byID,
		categories: categories,
	}
}

// GetAll returns a copy of every dish in catalog order
func (r *InMemoryDishRepository) GetAll(ctx context.Context) ([]models.Dish, error) {
	return slices.Clone(r.dishes), nil
}

// GetByID returns a dish by its ID
func (r *InMemoryDishRepository) GetByID(ctx context.Context, id int64) (*models.Dish, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrDishNotFound
	}
	dish := r.dishes[i]
	return &dish, nil
}

// Categories returns category summaries in catalog order
func (r *InMemoryDishRepository) Categories(ctx context.Context) ([]models.CategorySummary, error) {
	return slices.Clone(r.categories), nil
}

// Count returns the number of dishes in the catalog
func (r *InMemoryDishRepository) Count() int {
	return len(r.dishes)
}

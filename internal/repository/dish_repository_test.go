package repository

import (
	"context"
	"testing"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Categories: []models.Category{
			{ID: "starters", Name: "Starters", Dishes: []models.Dish{
				{ID: 1, Name: "Paneer Tikka", Price: 220},
				{ID: 2, Name: "Hara Bhara Kabab", Price: 180},
			}},
			{ID: "mains", Name: "Mains", Dishes: []models.Dish{
				{ID: 3, Name: "Dal Makhani", Price: 240, Category: "ignored"},
			}},
		},
	}
}

func TestInMemoryDishRepository(t *testing.T) {
	repo := NewInMemoryDishRepository(testCatalog())
	ctx := context.Background()

	dishes, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(dishes) != 3 {
		t.Fatalf("expected 3 dishes, got %d", len(dishes))
	}
	if dishes[2].Category != "mains" {
		t.Errorf("expected category from parent, got %q", dishes[2].Category)
	}

	// callers may not mutate the repository through the returned slice
	dishes[0].Name = "changed"
	again, _ := repo.GetAll(ctx)
	if again[0].Name != "Paneer Tikka" {
		t.Errorf("GetAll() leaked internal state: %q", again[0].Name)
	}

	dish, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if dish.Name != "Hara Bhara Kabab" {
		t.Errorf("expected Hara Bhara Kabab, got %s", dish.Name)
	}

	if _, err := repo.GetByID(ctx, 99); err != ErrDishNotFound {
		t.Errorf("expected ErrDishNotFound, got %v", err)
	}

	cats, _ := repo.Categories(ctx)
	if len(cats) != 2 || cats[0].DishCount != 2 || cats[1].ID != "mains" {
		t.Errorf("unexpected categories: %+v", cats)
	}

	if repo.Count() != 3 {
		t.Errorf("Count() = %d, want 3", repo.Count())
	}
}

func TestInMemoryPackageRepository(t *testing.T) {
	repo := NewInMemoryPackageRepository(events.DefaultPackages())
	ctx := context.Background()

	all, _ := repo.GetAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(all))
	}

	pkg, err := repo.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if pkg.Name != "Large Banquet" || pkg.Capacity != 100 {
		t.Errorf("unexpected package: %+v", pkg)
	}

	if _, err := repo.GetByID(ctx, 0); err != ErrPackageNotFound {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
}

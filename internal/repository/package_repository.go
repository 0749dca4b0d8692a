package repository

import (
	"context"
	"slices"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
)

// PackageRepository defines read access to event packages
type PackageRepository interface {
	GetAll(ctx context.Context) ([]models.EventPackage, error)
	GetByID(ctx context.Context, id int64) (*models.EventPackage, error)
}

// InMemoryPackageRepository implements PackageRepository over a fixed list
type InMemoryPackageRepository struct {
	packages []models.EventPackage
}

// NewInMemoryPackageRepository creates a repository seeded with packages
func NewInMemoryPackageRepository(packages []models.EventPackage) *InMemoryPackageRepository {
	return &InMemoryPackageRepository{packages: slices.Clone(packages)}
}

// GetAll returns all packages
func (r *InMemoryPackageRepository) GetAll(ctx context.Context) ([]models.EventPackage, error) {
	return slices.Clone(r.packages), nil
}

// GetByID returns a package by its ID
func (r *InMemoryPackageRepository) GetByID(ctx context.Context, id int64) (*models.EventPackage, error) {
	for _, p := range r.packages {
		if p.ID == id {
			pkg := p
			return &pkg, nil
		}
	}
	return nil, ErrPackageNotFound
}

package service

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-site/backend/internal/repository"
)

var ErrInvalidGuests = errors.New("guest count must not be negative")

// EventService lists event packages and prices them
type EventService struct {
	packages   repository.PackageRepository
	calculator events.Calculator
}

// NewEventService creates a new event service
func NewEventService(packages repository.PackageRepository, calculator events.Calculator) *EventService {
	return &EventService{
		packages:   packages,
		calculator: calculator,
	}
}

// Packages returns every event package
func (s *EventService) Packages(ctx context.Context) ([]models.EventPackage, error) {
	return s.packages.GetAll(ctx)
}

// Package returns the package with id, or nil when id selects no package
func (s *EventService) Package(ctx context.Context, id int64) (*models.EventPackage, error) {
	if id == 0 {
		return nil, nil
	}

	pkg, err := s.packages.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPackageNotFound) {
		return nil, nil
	}
	return pkg, err
}

// Quote prices guests against package id. An unknown or zero id gives an unavailable quote.
func (s *EventService) Quote(ctx context.Context, packageID int64, guests int) (models.EventQuote, error) {
	if guests < 0 {
		return models.EventQuote{}, ErrInvalidGuests
	}

	pkg, err := s.Package(ctx, packageID)
	if err != nil {
		return models.EventQuote{}, err
	}
	return s.calculator.Quote(pkg, guests), nil
}

package events

import "github.com/Lixing-Zhang/restaurant-site/backend/internal/models"

// DefaultPerGuestSurcharge is charged for every guest beyond a package's capacity (INR)
const DefaultPerGuestSurcharge int64 = 500

// Calculator prices event packages
type Calculator struct {
	PerGuestSurcharge int64
}

// NewCalculator creates a calculator; a non-positive surcharge falls back to the default
func NewCalculator(perGuestSurcharge int64) Calculator {
	if perGuestSurcharge <= 0 {
		perGuestSurcharge = DefaultPerGuestSurcharge
	}
	return Calculator{PerGuestSurcharge: perGuestSurcharge}
}

// Total returns basePrice + max(0, guests-capacity) * surcharge.
// ok is false when no package is selected.
func (c Calculator) Total(pkg *models.EventPackage, guests int) (total int64, ok bool) {
	q := c.Quote(pkg, guests)
	return q.Total, q.Available
}

// Quote returns the full price breakdown for pkg and guests.
// A nil package yields an unavailable quote rather than a zero total.
func (c Calculator) Quote(pkg *models.EventPackage, guests int) models.EventQuote {
	if pkg == nil {
		return models.EventQuote{Available: false}
	}

	extra := max(0, guests-pkg.Capacity)
	surcharge := int64(extra) * c.PerGuestSurcharge

	return models.EventQuote{
		Available:   true,
		PackageID:   pkg.ID,
		PackageName: pkg.Name,
		Guests:      guests,
		BasePrice:   pkg.Price,
		ExtraGuests: extra,
		Surcharge:   surcharge,
		Total:       pkg.Price + surcharge,
	}
}

// DefaultPackages returns the packages offered on the events page
func DefaultPackages() []models.EventPackage {
	return []models.EventPackage{
		{
			ID:          1,
			Name:        "Small Gathering",
			Capacity:    20,
			Price:       15000,
			Description: "Perfect for intimate celebrations",
			Features:    []string{"Buffet menu", "Basic decoration", "Sound system", "Photography"},
			Image:       "/images/events/small-event.jpg",
		},
		{
			ID:          2,
			Name:        "Medium Event",
			Capacity:    50,
			Price:       35000,
			Description: "Ideal for family functions",
			Features:    []string{"Premium buffet", "Stage decoration", "DJ & sound", "Professional photography", "Flower arrangements"},
			Image:       "/images/events/medium-event.jpg",
		},
		{
			ID:          3,
			Name:        "Large Banquet",
			Capacity:    100,
			Price:       70000,
			Description: "Grand celebrations and corporate events",
			Features:    []string{"Luxury buffet", "Full stage setup", "Live music", "Video coverage", "Premium decoration", "Event coordinator"},
			Image:       "/images/events/large-event.jpg",
		},
	}
}

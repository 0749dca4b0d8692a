package models

// EventPackage is a fixed-capacity, fixed-price package for private events
type EventPackage struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Image       string   `json:"image"`
}

// EventQuote is the price breakdown for a package and guest count.
// Available is false when no package was selected; the amounts are then meaningless.
type EventQuote struct {
	Available   bool   `json:"available"`
	PackageID   int64  `json:"packageId,omitempty"`
	PackageName string `json:"packageName,omitempty"`
	Guests      int    `json:"guests,omitempty"`
	BasePrice   int64  `json:"basePrice,omitempty"`
	ExtraGuests int    `json:"extraGuests,omitempty"`
	Surcharge   int64  `json:"surcharge,omitempty"`
	Total       int64  `json:"total,omitempty"`
}

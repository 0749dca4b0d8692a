// Package menu derives the visible dish list from the static catalog and a
// visitor's filter/sort selections. Every function here is pure: the catalog
// is never mutated and identical inputs always produce identically ordered output.
package menu

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/restaurant-site/backend/internal/models"
)

// AllCategories selects every category
const AllCategories = "all"

// HighlightLimit caps the number of popular dishes returned by PopularHighlights
const HighlightLimit = 3

// SortMode orders the filtered dishes
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortRating    SortMode = "rating"
	SortPriceLow  SortMode = "price-low"
	SortPriceHigh SortMode = "price-high"
)

// ParseSortMode maps a user-supplied value to a SortMode.
// An empty value is the default (catalog) order.
func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return SortDefault, nil
	case SortDefault, SortRating, SortPriceLow, SortPriceHigh:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Query holds the visitor's current selections
type Query struct {
	Category    string
	Search      string
	Sort        SortMode
	PopularOnly bool
	SpecialOnly bool
}

// DefaultQuery is the state a menu view starts in
func DefaultQuery() Query {
	return Query{Category: AllCategories, Sort: SortDefault}
}

// Derive returns the dishes matching every active filter in q, ordered by q.Sort.
// The result is always a new non-nil slice; no match yields an empty slice.
func Derive(catalog []models.Dish, q Query) []models.Dish {
	search := strings.ToLower(q.Search)

	result := make([]models.Dish, 0, len(catalog))
	for _, dish := range catalog {
		if q.matches(dish, search) {
			result = append(result, dish)
		}
	}

	switch q.Sort {
	case SortRating:
		slices.SortStableFunc(result, func(a, b models.Dish) int {
			return compareFloat(b.RatingOrZero(), a.RatingOrZero())
		})
	case SortPriceLow:
		slices.SortStableFunc(result, func(a, b models.Dish) int {
			return compareFloat(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(result, func(a, b models.Dish) int {
			return compareFloat(b.Price, a.Price)
		})
	}

	return result
}

// matches applies the filter stage. search must already be lower-cased.
func (q Query) matches(dish models.Dish, search string) bool {
	if q.Category != "" && q.Category != AllCategories && dish.Category != q.Category {
		return false
	}
	if q.PopularOnly && !dish.IsPopular {
		return false
	}
	if q.SpecialOnly && !dish.IsChefsSpecial {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(dish.Name), search) ||
		strings.Contains(strings.ToLower(dish.Description), search)
}

// PopularHighlights returns up to HighlightLimit popular dishes in catalog order
func PopularHighlights(catalog []models.Dish) []models.Dish {
	result := make([]models.Dish, 0, HighlightLimit)
	for _, dish := range catalog {
		if len(result) == HighlightLimit {
			break
		}
		if dish.IsPopular {
			result = append(result, dish)
		}
	}
	return result
}

// ChefsSpecials returns every chef's special in catalog order
func ChefsSpecials(catalog []models.Dish) []models.Dish {
	result := make([]models.Dish, 0)
	for _, dish := range catalog {
		if dish.IsChefsSpecial {
			result = append(result, dish)
		}
	}
	return result
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

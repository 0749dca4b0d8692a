package models

// Dish represents a single item on the restaurant menu.
// Optional attributes are pointers so an absent value can be told apart from zero.
type Dish struct {
	ID             int64    `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Price          float64  `json:"price" yaml:"price"`
	Image          string   `json:"image" yaml:"image"`
	Category       string   `json:"category" yaml:"category"`
	Rating         *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Reviews        *int     `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	SpiceLevel     *int     `json:"spiceLevel,omitempty" yaml:"spiceLevel,omitempty"`
	IsPopular      bool     `json:"isPopular,omitempty" yaml:"isPopular,omitempty"`
	IsChefsSpecial bool     `json:"isChefsSpecial,omitempty" yaml:"isChefsSpecial,omitempty"`
	Dietary        []string `json:"dietary,omitempty" yaml:"dietary,omitempty"`
	Calories       *int     `json:"calories,omitempty" yaml:"calories,omitempty"`
	PrepTime       string   `json:"prepTime,omitempty" yaml:"prepTime,omitempty"`
}

// RatingOrZero returns the dish rating, treating a missing rating as 0.
func (d Dish) RatingOrZero() float64 {
	if d.Rating == nil {
		return 0
	}
	return *d.Rating
}

// Category groups dishes under a display name
type Category struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Dishes []Dish `json:"dishes" yaml:"dishes"`
}

// Catalog is the static menu loaded once at start-up
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

// Dishes flattens the catalog into a single slice in catalog order.
// Each dish takes the id of the category it is listed under.
func (c *Catalog) Dishes() []Dish {
	total := 0
	for _, cat := range c.Categories {
		total += len(cat.Dishes)
	}

	dishes := make([]Dish, 0, total)
	for _, cat := range c.Categories {
		for _, dish := range cat.Dishes {
			dish.Category = cat.ID
			dishes = append(dishes, dish)
		}
	}
	return dishes
}

// CategorySummary describes a category without its dishes
type CategorySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DishCount int    `json:"dishCount"`
}

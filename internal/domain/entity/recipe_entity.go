package entity

// Recipe is the read-only projection of a recipe shown in favorite lists.
type Recipe struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	ImageURL   string `json:"image_url"`
	PrepTime   int    `json:"prep_time"`
	Difficulty string `json:"difficulty"`
}

// CategoryDrink is the category whose cards are tinted green instead of blue.
const CategoryDrink = "minuman"

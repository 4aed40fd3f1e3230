package entity

import "time"

const MaxRating = 5

// Review is a user's rating of a recipe, read-only on the profile screen.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RecipeID   string    `json:"recipe_id"`
	RecipeName string    `json:"recipe_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClampedRating keeps the rating within 0..MaxRating.
func (r Review) ClampedRating() int {
	switch {
	case r.Rating < 0:
		return 0
	case r.Rating > MaxRating:
		return MaxRating
	default:
		return r.Rating
	}
}

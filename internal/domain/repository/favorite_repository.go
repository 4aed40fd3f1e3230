package repository

import (
	"context"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

// FavoriteRepository stores user-recipe favorite associations.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Recipe, error)
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
	// Toggle flips the association atomically and returns the new state.
	Toggle(ctx context.Context, userID, recipeID string) (bool, error)
	CountByRecipe(ctx context.Context, recipeID string) (int, error)
}

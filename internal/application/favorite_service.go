package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-profile/internal/domain/repository"
	"github.com/oksasatya/go-recipe-profile/internal/inflight"
)

// FavoriteService is the favorites store shared by the profile screen and the
// toggle control. It is passed to its consumers explicitly.
type FavoriteService struct {
	Repo   repo.FavoriteRepository
	Guard  inflight.Guard
	Logger *logrus.Logger
}

func NewFavoriteService(r repo.FavoriteRepository, guard inflight.Guard, logger *logrus.Logger) *FavoriteService {
	if guard == nil {
		guard = inflight.NewMemoryGuard()
	}
	return &FavoriteService{Repo: r, Guard: guard, Logger: logger}
}

func toggleKey(userID, recipeID string) string {
	return userID + ":" + recipeID
}

func (s *FavoriteService) Favorites(ctx context.Context, userID string) ([]entity.Recipe, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	list, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("list favorites failed")
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if list == nil {
		list = []entity.Recipe{}
	}
	return list, nil
}

// Toggle flips the favorite and returns the new state. A toggle for the same
// user and recipe that is already running makes this call fail with
// ErrToggleInFlight; it is never queued.
func (s *FavoriteService) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	if userID == "" || recipeID == "" {
		return false, ErrInvalidArgument
	}
	release, ok, err := s.Guard.Acquire(ctx, toggleKey(userID, recipeID))
	switch {
	case err != nil:
		// fail-open: the DB transaction still keeps the row consistent
		s.Logger.WithError(err).WithField("recipe_id", recipeID).Warn("toggle guard unavailable")
	case !ok:
		return false, ErrToggleInFlight
	default:
		defer release()
	}

	favorited, err := s.Repo.Toggle(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, ErrRecipeNotFound
		}
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "recipe_id": recipeID}).Error("toggle favorite failed")
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	s.Logger.WithFields(logrus.Fields{"user_id": userID, "recipe_id": recipeID, "favorited": favorited}).Debug("favorite toggled")
	return favorited, nil
}

func (s *FavoriteService) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	if userID == "" || recipeID == "" {
		return false, ErrInvalidArgument
	}
	return s.Repo.Exists(ctx, userID, recipeID)
}

func (s *FavoriteService) FavoriteCount(ctx context.Context, recipeID string) (int, error) {
	if recipeID == "" {
		return 0, ErrInvalidArgument
	}
	return s.Repo.CountByRecipe(ctx, recipeID)
}

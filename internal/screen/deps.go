// Package screen holds the profile screen model and the favorite toggle
// control. Both keep only transient UI state; every read and write goes to
// the stores passed in through Deps.
package screen

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/application"
	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateUsername(ctx context.Context, userID, name string) (*entity.Profile, error)
	UpdateAvatar(ctx context.Context, userID, dataURI string) (*entity.Profile, error)
}

type FavoritesStore interface {
	Favorites(ctx context.Context, userID string) ([]entity.Recipe, error)
	Toggle(ctx context.Context, userID, recipeID string) (bool, error)
	IsFavorited(ctx context.Context, userID, recipeID string) (bool, error)
	FavoriteCount(ctx context.Context, recipeID string) (int, error)
}

type ReviewStore interface {
	GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error)
}

// Deps are the collaborators injected into every screen.
type Deps struct {
	Profiles  ProfileStore
	Favorites FavoritesStore
	Reviews   ReviewStore
	Logger    *logrus.Logger

	UsernameMinLen int
	AvatarMaxBytes int64
}

func (d Deps) withDefaults() Deps {
	if d.UsernameMinLen <= 0 {
		d.UsernameMinLen = application.DefaultUsernameMinLen
	}
	if d.AvatarMaxBytes <= 0 {
		d.AvatarMaxBytes = application.DefaultAvatarMaxBytes
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	return d
}

var (
	_ ProfileStore   = (*application.ProfileService)(nil)
	_ FavoritesStore = (*application.FavoriteService)(nil)
	_ ReviewStore    = (*application.ReviewService)(nil)
)

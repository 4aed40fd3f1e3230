package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ProfileRepository defines the interface for profile-related database operations.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	UpdateUsername(ctx context.Context, id, username string) (*entity.Profile, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) (*entity.Profile, error)
}

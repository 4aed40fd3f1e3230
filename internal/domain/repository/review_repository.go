package repository

import (
	"context"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

type ReviewRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Review, error)
}

package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-profile/internal/domain/repository"
)

type ReviewService struct {
	Repo   repo.ReviewRepository
	Logger *logrus.Logger
}

func NewReviewService(r repo.ReviewRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Repo: r, Logger: logger}
}

// GetUserReviews returns the user's reviews, newest first.
func (s *ReviewService) GetUserReviews(ctx context.Context, userID string) ([]entity.Review, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	list, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("list reviews failed")
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	if list == nil {
		list = []entity.Review{}
	}
	return list, nil
}

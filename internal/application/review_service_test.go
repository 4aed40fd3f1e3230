package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

type stubReviews struct {
	list []entity.Review
	err  error
}

func (s stubReviews) ListByUser(context.Context, string) ([]entity.Review, error) {
	return s.list, s.err
}

func TestGetUserReviews(t *testing.T) {
	ctx := context.Background()

	list, err := NewReviewService(stubReviews{}, quietLogger()).GetUserReviews(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, list)

	_, err = NewReviewService(stubReviews{err: errors.New("db down")}, quietLogger()).GetUserReviews(ctx, "u1")
	assert.ErrorContains(t, err, "load reviews: db down")

	_, err = NewReviewService(stubReviews{}, quietLogger()).GetUserReviews(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	"github.com/oksasatya/go-recipe-profile/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.user_id, v.recipe_id, r.name, v.rating, COALESCE(v.comment, ''), v.created_at
		FROM reviews v
		JOIN recipes r ON r.id = v.recipe_id
		WHERE v.user_id = $1
		ORDER BY v.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Review, 0)
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.RecipeID, &rv.RecipeName, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

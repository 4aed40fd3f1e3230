package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	"github.com/oksasatya/go-recipe-profile/internal/domain/repository"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]entity.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, r.category, r.image_url, r.prep_time, r.difficulty
		FROM favorites f
		JOIN recipes r ON r.id = f.recipe_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Recipe, 0)
	for rows.Next() {
		var rc entity.Recipe
		if err := rows.Scan(&rc.ID, &rc.Name, &rc.Category, &rc.ImageURL, &rc.PrepTime, &rc.Difficulty); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND recipe_id = $2)`,
		userID, recipeID).Scan(&ok)
	return ok, err
}

// Toggle deletes the association when present, otherwise inserts it, in one transaction.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	var favorited bool
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			favorited = false
			return nil
		}
		tag, err = tx.Exec(ctx, `
			INSERT INTO favorites (user_id, recipe_id)
			SELECT $1, id FROM recipes WHERE id = $2
			ON CONFLICT (user_id, recipe_id) DO NOTHING
		`, userID, recipeID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		favorited = true
		return nil
	})
	return favorited, err
}

func (r *FavoriteRepository) CountByRecipe(ctx context.Context, recipeID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM favorites WHERE recipe_id = $1`, recipeID).Scan(&n)
	return n, err
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)

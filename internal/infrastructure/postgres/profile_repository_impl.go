package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	"github.com/oksasatya/go-recipe-profile/internal/domain/repository"
)

const profileColumns = `id, email, password_hash, username, avatar_url, created_at, updated_at`

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	if err := row.Scan(&p.ID, &p.Email, &p.Password, &p.Username, &p.AvatarURL,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE id = $1`, id))
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE email = $1`, email))
}

// UpdateUsername writes the new name and returns the whole updated row.
func (r *ProfileRepository) UpdateUsername(ctx context.Context, id, username string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		UPDATE users
		SET username = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+profileColumns, username, id))
}

func (r *ProfileRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) (*entity.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		UPDATE users
		SET avatar_url = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+profileColumns, avatarURL, id))
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"devconnect/internal/domain/user"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

func (r *postgresUserRepo) Insert(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, name, email, password_hash, avatar, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *postgresUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET avatar = $2 WHERE id = $1`, id, avatarURL)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepo) scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return u, nil
}

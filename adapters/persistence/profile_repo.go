package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"devconnect/internal/domain/profile"
	"devconnect/pkg/logger"
)

// Profiles are stored as documents: the scalar fields are columns, the
// embedded sequences (skills, social, experience, education) live in
// JSONB and are mutated read-modify-write.
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, log logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: log}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `user_id, handle, company, website, location, bio, status, github_username,
	skills, social, experience, education, created_at, updated_at`

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) error {
	skills, social, experience, education, err := marshalProfileDocs(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		skills, social, experience, education, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return profile.ErrHandleTaken
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, p *profile.Profile) error {
	skills, social, experience, education, err := marshalProfileDocs(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles SET
			handle = $2, company = $3, website = $4, location = $5, bio = $6,
			status = $7, github_username = $8, skills = $9, social = $10,
			experience = $11, education = $12, updated_at = NOW()
		WHERE user_id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.UserID, p.Handle, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GithubUsername,
		skills, social, experience, education,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (r *postgresProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *postgresProfileRepo) FindByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE handle = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, handle))
}

func (r *postgresProfileRepo) List(ctx context.Context) ([]*profile.Profile, error) {
	builder := psql.Select(profileColumns).
		From("profiles").
		OrderBy("created_at DESC")

	sql, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}
	return profiles, nil
}

// DeleteWithUser removes the profile and its user inside one
// transaction, so a failed second step never leaves an orphaned user.
func (r *postgresProfileRepo) DeleteWithUser(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.UserID, &p.Handle, &p.Company, &p.Website, &p.Location, &p.Bio, &p.Status, &p.GithubUsername,
		&skillsBytes, &socialBytes, &experienceBytes, &educationBytes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile row: %w", err)
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("failed to unmarshal skills", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("failed to unmarshal social", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Social = profile.SocialLinks{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("failed to unmarshal experience", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("failed to unmarshal education", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	return p, nil
}

func marshalProfileDocs(p *profile.Profile) (skills, social, experience, education []byte, err error) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []profile.Experience{}
	}
	if p.Education == nil {
		p.Education = []profile.Education{}
	}

	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if social, err = json.Marshal(p.Social); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal social: %w", err)
	}
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal education: %w", err)
	}
	return skills, social, experience, education, nil
}

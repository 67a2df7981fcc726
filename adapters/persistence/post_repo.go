package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"devconnect/internal/domain/post"
)

type postgresPostRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPostRepo(db *pgxpool.Pool) post.Repository {
	return &postgresPostRepo{db: db}
}

const postColumns = `id, user_id, name, avatar, text, likes, comments, created_at`

func (r *postgresPostRepo) Save(ctx context.Context, p *post.Post) error {
	likes, comments, err := marshalPostDocs(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Name, p.Avatar, p.Text, likes, comments, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *postgresPostRepo) Update(ctx context.Context, p *post.Post) error {
	likes, comments, err := marshalPostDocs(p)
	if err != nil {
		return err
	}

	query := `UPDATE posts SET likes = $2, comments = $3 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, likes, comments)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.db.QueryRow(ctx, query, id))
}

func (r *postgresPostRepo) List(ctx context.Context) ([]*post.Post, error) {
	builder := psql.Select(postColumns).
		From("posts").
		OrderBy("created_at DESC")

	sql, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

func scanPost(row pgx.Row) (*post.Post, error) {
	p := &post.Post{}
	var likesBytes, commentsBytes []byte

	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Avatar, &p.Text, &likesBytes, &commentsBytes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to scan post row: %w", err)
	}

	if err := json.Unmarshal(likesBytes, &p.Likes); err != nil {
		p.Likes = []post.Like{}
	}
	if err := json.Unmarshal(commentsBytes, &p.Comments); err != nil {
		p.Comments = []post.Comment{}
	}
	return p, nil
}

func marshalPostDocs(p *post.Post) (likes, comments []byte, err error) {
	if p.Likes == nil {
		p.Likes = []post.Like{}
	}
	if p.Comments == nil {
		p.Comments = []post.Comment{}
	}

	if likes, err = json.Marshal(p.Likes); err != nil {
		return nil, nil, fmt.Errorf("failed to marshal likes: %w", err)
	}
	if comments, err = json.Marshal(p.Comments); err != nil {
		return nil, nil, fmt.Errorf("failed to marshal comments: %w", err)
	}
	return likes, comments, nil
}

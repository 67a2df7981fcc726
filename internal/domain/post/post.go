package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not been liked")
	ErrCommentNotFound = errors.New("comment not found")
)

type Like struct {
	User uuid.UUID `json:"user"`
}

// Comment carries a denormalized author snapshot: name and avatar are
// copied at creation time, not joined at read time.
type Comment struct {
	ID     uuid.UUID `json:"id"`
	User   uuid.UUID `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post embeds likes and comments as sub-documents. Name and Avatar are
// the author snapshot taken when the post was created.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// AddLike prepends a like for the user. At most one like per user.
func (p *Post) AddLike(userID uuid.UUID) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{User: userID}}, p.Likes...)
	return nil
}

func (p *Post) RemoveLike(userID uuid.UUID) error {
	for i, l := range p.Likes {
		if l.User == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

func (p *Post) AddComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// RemoveComment deletes the comment with the given id and returns it so
// callers can check authorship. A missing id is an explicit error.
func (p *Post) RemoveComment(id uuid.UUID) (Comment, error) {
	for i, c := range p.Comments {
		if c.ID == id {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return c, nil
		}
	}
	return Comment{}, ErrCommentNotFound
}

type Repository interface {
	Save(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
}

package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"devconnect/adapters/event"
	"devconnect/internal/domain/post"
	"devconnect/internal/domain/user"
	"devconnect/pkg/apperror"
)

type AddCommentInput struct {
	UserID uuid.UUID
	PostID uuid.UUID
	Text   string
}

// ExecuteAddComment prepends a comment carrying the commenter's
// name/avatar snapshot taken at call time.
func (uc *PostUseCase) ExecuteAddComment(ctx context.Context, input AddCommentInput) (*post.Post, error) {
	author, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to look up author", err)
	}

	p, err := uc.findPost(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	p.AddComment(post.Comment{
		ID:     uuid.New(),
		User:   author.ID,
		Text:   input.Text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now().UTC(),
	})

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save comment", err)
	}

	uc.publishEvent(p.ID, input.UserID, event.PostEventTypeCommented)
	return p, nil
}

// ExecuteRemoveComment deletes a comment by id. Missing ids are a
// NotFound error. Only the comment author or the post author may
// remove a comment.
func (uc *PostUseCase) ExecuteRemoveComment(ctx context.Context, userID, postID, commentID uuid.UUID) (*post.Post, error) {
	p, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	removed, err := p.RemoveComment(commentID)
	if err != nil {
		if errors.Is(err, post.ErrCommentNotFound) {
			return nil, apperror.NewNotFound("comment", commentID.String())
		}
		return nil, apperror.NewInternal("failed to remove comment", err)
	}

	if removed.User != userID && p.UserID != userID {
		return nil, apperror.NewUnauthorized("user not authorized", nil)
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save post", err)
	}
	return p, nil
}

package post

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"devconnect/internal/domain/post"
	"devconnect/pkg/apperror"
)

// ExecuteLike records a like for the caller. Liking the same post a
// second time is a conflict and leaves the sequence untouched. Any
// authenticated user may like a post; no profile is required.
func (uc *PostUseCase) ExecuteLike(ctx context.Context, userID, postID uuid.UUID) ([]post.Like, error) {
	p, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.AddLike(userID); err != nil {
		if errors.Is(err, post.ErrAlreadyLiked) {
			return nil, apperror.NewConflict("you have already liked this post")
		}
		return nil, apperror.NewInternal("failed to like post", err)
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save post", err)
	}
	return p.Likes, nil
}

func (uc *PostUseCase) ExecuteUnlike(ctx context.Context, userID, postID uuid.UUID) ([]post.Like, error) {
	p, err := uc.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveLike(userID); err != nil {
		if errors.Is(err, post.ErrNotLiked) {
			return nil, apperror.NewConflict("you have not liked this post")
		}
		return nil, apperror.NewInternal("failed to unlike post", err)
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save post", err)
	}
	return p.Likes, nil
}

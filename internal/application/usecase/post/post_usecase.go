package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"devconnect/adapters/event"
	"devconnect/internal/domain/post"
	"devconnect/internal/domain/user"
	"devconnect/pkg/apperror"
	"devconnect/pkg/logger"
)

var tracer = otel.Tracer("post_usecase")

// EventPublisher is the slice of the kafka producer the engine needs.
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, payload event.PostEventPayload) error
}

type PostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
	events   EventPublisher
	logger   logger.Logger
}

func NewPostUseCase(pRepo post.Repository, uRepo user.Repository, events EventPublisher, log logger.Logger) *PostUseCase {
	return &PostUseCase{
		postRepo: pRepo,
		userRepo: uRepo,
		events:   events,
		logger:   log,
	}
}

type CreatePostInput struct {
	UserID uuid.UUID
	Text   string
}

// ExecuteCreate stores a new post with the author's name and avatar
// snapshotted at creation time, not joined at read time.
func (uc *PostUseCase) ExecuteCreate(ctx context.Context, input CreatePostInput) (*post.Post, error) {
	ctx, span := tracer.Start(ctx, "CreatePost")
	defer span.End()

	author, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to look up author", err)
	}

	p := &post.Post{
		ID:        uuid.New(),
		UserID:    author.ID,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Text:      input.Text,
		Likes:     []post.Like{},
		Comments:  []post.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.postRepo.Save(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save post", err)
	}

	uc.publishEvent(p.ID, p.UserID, event.PostEventTypeCreated)
	return p, nil
}

func (uc *PostUseCase) ExecuteGet(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	return uc.findPost(ctx, postID)
}

func (uc *PostUseCase) ExecuteList(ctx context.Context) ([]*post.Post, error) {
	posts, err := uc.postRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list posts", err)
	}
	return posts, nil
}

// ExecuteDelete removes a post. Only the author may delete it.
func (uc *PostUseCase) ExecuteDelete(ctx context.Context, userID, postID uuid.UUID) error {
	p, err := uc.findPost(ctx, postID)
	if err != nil {
		return err
	}

	if p.UserID != userID {
		return apperror.NewUnauthorized("user not authorized", nil)
	}

	if err := uc.postRepo.Delete(ctx, postID); err != nil {
		return apperror.NewInternal("failed to delete post", err)
	}

	uc.publishEvent(postID, userID, event.PostEventTypeDeleted)
	return nil
}

func (uc *PostUseCase) findPost(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("post", postID.String())
		}
		return nil, apperror.NewInternal("failed to look up post", err)
	}
	return p, nil
}

// publishEvent fires the kafka event asynchronously; a broker failure
// never fails the request.
func (uc *PostUseCase) publishEvent(postID, userID uuid.UUID, eventType event.PostEventType) {
	if uc.events == nil {
		return
	}
	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: eventType,
			PostID:    postID,
			UserID:    userID,
		})
		if err != nil {
			uc.logger.Error("failed to publish post event", err,
				zap.String("post_id", postID.String()),
				zap.String("event_type", string(eventType)))
		}
	}()
}

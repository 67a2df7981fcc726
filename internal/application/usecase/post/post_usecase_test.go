package post_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	postUC "devconnect/internal/application/usecase/post"
	"devconnect/internal/domain/post"
	"devconnect/internal/domain/user"
	"devconnect/pkg/apperror"
	"devconnect/pkg/logger"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Save(ctx context.Context, p *post.Post) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPostRepository) Update(ctx context.Context, p *post.Post) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*post.Post, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*post.Post), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, u *user.User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	args := m.Called(id, avatarURL)
	return args.Error(0)
}

func newPostUseCase(postRepo *MockPostRepository, userRepo *MockUserRepository) *postUC.PostUseCase {
	return postUC.NewPostUseCase(postRepo, userRepo, nil, logger.NewZapLogger("development"))
}

func TestCreatePost_SnapshotsAuthor(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	author := &user.User{ID: uuid.New(), Name: "Jane Doe", Avatar: "https://img/jane.png"}
	mockUsers.On("FindByID", author.ID).Return(author, nil).Once()
	mockPosts.On("Save", mock.AnythingOfType("*post.Post")).Return(nil).Once()

	p, err := uc.ExecuteCreate(context.Background(), postUC.CreatePostInput{
		UserID: author.ID,
		Text:   "hello world",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, "https://img/jane.png", p.Avatar)
	assert.Equal(t, author.ID, p.UserID)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)
	mockPosts.AssertExpectations(t)
}

func TestLikePost_SecondLikeConflicts(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	userID := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: uuid.New(), Likes: []post.Like{}}
	mockPosts.On("FindByID", p.ID).Return(p, nil)
	mockPosts.On("Update", p).Return(nil)

	likes, err := uc.ExecuteLike(context.Background(), userID, p.ID)
	assert.NoError(t, err)
	assert.Len(t, likes, 1)
	assert.Equal(t, userID, likes[0].User)

	_, err = uc.ExecuteLike(context.Background(), userID, p.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Len(t, p.Likes, 1)
}

func TestUnlikePost_NeverLikedConflicts(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	p := &post.Post{ID: uuid.New(), UserID: uuid.New(), Likes: []post.Like{}}
	mockPosts.On("FindByID", p.ID).Return(p, nil).Once()

	_, err := uc.ExecuteUnlike(context.Background(), uuid.New(), p.ID)

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Empty(t, p.Likes)
	mockPosts.AssertNotCalled(t, "Update", mock.Anything)
}

func TestLikeThenUnlike_EmptiesSequence(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	userID := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: uuid.New(), Likes: []post.Like{}}
	mockPosts.On("FindByID", p.ID).Return(p, nil)
	mockPosts.On("Update", p).Return(nil)

	likes, err := uc.ExecuteLike(context.Background(), userID, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, []post.Like{{User: userID}}, likes)

	likes, err = uc.ExecuteUnlike(context.Background(), userID, p.ID)
	assert.NoError(t, err)
	assert.Empty(t, likes)
}

func TestDeletePost_OnlyAuthorMayDelete(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	author := uuid.New()
	p := &post.Post{ID: uuid.New(), UserID: author}
	mockPosts.On("FindByID", p.ID).Return(p, nil)

	err := uc.ExecuteDelete(context.Background(), uuid.New(), p.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	mockPosts.AssertNotCalled(t, "Delete", mock.Anything)

	mockPosts.On("Delete", p.ID).Return(nil).Once()
	assert.NoError(t, uc.ExecuteDelete(context.Background(), author, p.ID))
	mockPosts.AssertExpectations(t)
}

func TestDeletePost_NotFound(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	postID := uuid.New()
	mockPosts.On("FindByID", postID).Return(nil, post.ErrPostNotFound).Once()

	err := uc.ExecuteDelete(context.Background(), uuid.New(), postID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddComment_SnapshotsCommenter(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	commenter := &user.User{ID: uuid.New(), Name: "Sam", Avatar: "https://img/sam.png"}
	p := &post.Post{ID: uuid.New(), UserID: uuid.New(), Comments: []post.Comment{}}

	mockUsers.On("FindByID", commenter.ID).Return(commenter, nil).Once()
	mockPosts.On("FindByID", p.ID).Return(p, nil).Once()
	mockPosts.On("Update", p).Return(nil).Once()

	updated, err := uc.ExecuteAddComment(context.Background(), postUC.AddCommentInput{
		UserID: commenter.ID,
		PostID: p.ID,
		Text:   "nice post",
	})

	assert.NoError(t, err)
	assert.Len(t, updated.Comments, 1)
	assert.Equal(t, "Sam", updated.Comments[0].Name)
	assert.Equal(t, "nice post", updated.Comments[0].Text)
	mockPosts.AssertExpectations(t)
}

func TestRemoveComment_MissingIDFailsExplicitly(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	p := &post.Post{ID: uuid.New(), UserID: uuid.New(), Comments: []post.Comment{}}
	mockPosts.On("FindByID", p.ID).Return(p, nil).Once()

	_, err := uc.ExecuteRemoveComment(context.Background(), uuid.New(), p.ID, uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	mockPosts.AssertNotCalled(t, "Update", mock.Anything)
}

func TestRemoveComment_OnlyCommentOrPostAuthor(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockUsers := new(MockUserRepository)
	uc := newPostUseCase(mockPosts, mockUsers)

	commentAuthor := uuid.New()
	postAuthor := uuid.New()
	comment := post.Comment{ID: uuid.New(), User: commentAuthor, Text: "hi"}
	p := &post.Post{ID: uuid.New(), UserID: postAuthor, Comments: []post.Comment{comment}}
	mockPosts.On("FindByID", p.ID).Return(p, nil).Once()

	_, err := uc.ExecuteRemoveComment(context.Background(), uuid.New(), p.ID, comment.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	mockPosts.AssertNotCalled(t, "Update", mock.Anything)
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "devconnect/internal/application/usecase/post"
	"devconnect/pkg/apperror"
)

type PostHandler struct {
	postUseCase *postUC.PostUseCase
}

func NewPostHandler(uc *postUC.PostUseCase) *PostHandler {
	return &PostHandler{postUseCase: uc}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("text field is required", err))
		return
	}

	p, err := h.postUseCase.ExecuteCreate(c.Request.Context(), postUC.CreatePostInput{
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.ExecuteList(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("post_id")))
		return
	}

	p, err := h.postUseCase.ExecuteGet(c.Request.Context(), postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("post_id")))
		return
	}

	if err := h.postUseCase.ExecuteDelete(c.Request.Context(), userID, postID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "post deleted"})
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("post_id")))
		return
	}

	likes, err := h.postUseCase.ExecuteLike(c.Request.Context(), userID, postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("post_id")))
		return
	}

	likes, err := h.postUseCase.ExecuteUnlike(c.Request.Context(), userID, postID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("post_id")))
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("text field is required", err))
		return
	}

	p, err := h.postUseCase.ExecuteAddComment(c.Request.Context(), postUC.AddCommentInput{
		UserID: userID,
		PostID: postID,
		Text:   req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	postID, err := uuid.Parse(c.Param("post_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("post", c.Param("post_id")))
		return
	}

	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("comment", c.Param("comment_id")))
		return
	}

	p, err := h.postUseCase.ExecuteRemoveComment(c.Request.Context(), userID, postID, commentID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

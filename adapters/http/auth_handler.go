package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "devconnect/internal/application/usecase/auth"
	"devconnect/pkg/apperror"
)

type AuthHandler struct {
	registerUseCase     *authUC.RegisterUseCase
	loginUseCase        *authUC.LoginUseCase
	currentUserUseCase  *authUC.CurrentUserUseCase
	uploadAvatarUseCase *authUC.UploadAvatarUseCase
}

func NewAuthHandler(
	registerUC *authUC.RegisterUseCase,
	loginUC *authUC.LoginUseCase,
	currentUserUC *authUC.CurrentUserUseCase,
	uploadAvatarUC *authUC.UploadAvatarUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:     registerUC,
		loginUseCase:        loginUC,
		currentUserUseCase:  currentUserUC,
		uploadAvatarUseCase: uploadAvatarUC,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid registration body", err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{AccessToken: output.AccessToken})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid login body", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: output.AccessToken})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	u, err := h.currentUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot open uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadAvatarUseCase.Execute(c.Request.Context(), authUC.UploadAvatarInput{
		UserID: userID,
		File:   file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": output.AvatarURL})
}

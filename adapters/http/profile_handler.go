package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "devconnect/internal/application/usecase/profile"
	"devconnect/pkg/apperror"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	githubUseCase  *profileUC.GithubReposUseCase
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, githubUC *profileUC.GithubReposUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		githubUseCase:  githubUC,
	}
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid profile body", err))
		return
	}

	p, err := h.profileUseCase.ExecuteUpsert(c.Request.Context(), profileUC.UpsertInput{
		UserID:         userID,
		Handle:         req.Handle,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	p, err := h.profileUseCase.ExecuteGetMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetAllProfiles(c *gin.Context) {
	profiles, err := h.profileUseCase.ExecuteGetAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) GetProfileByHandle(c *gin.Context) {
	p, err := h.profileUseCase.ExecuteGetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("profile", c.Param("user_id")))
		return
	}

	p, err := h.profileUseCase.ExecuteGetByUserID(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience body", err))
		return
	}

	p, err := h.profileUseCase.ExecuteAddExperience(c.Request.Context(), profileUC.AddExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("experience", c.Param("exp_id")))
		return
	}

	p, err := h.profileUseCase.ExecuteRemoveExperience(c.Request.Context(), userID, entryID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid education body", err))
		return
	}

	p, err := h.profileUseCase.ExecuteAddEducation(c.Request.Context(), profileUC.AddEducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("education", c.Param("edu_id")))
		return
	}

	p, err := h.profileUseCase.ExecuteRemoveEducation(c.Request.Context(), userID, entryID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("user id not found in context"))
		return
	}

	if err := h.profileUseCase.ExecuteDelete(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "profile deleted"})
}

func (h *ProfileHandler) GithubRepos(c *gin.Context) {
	repos, err := h.githubUseCase.Execute(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, repos)
}

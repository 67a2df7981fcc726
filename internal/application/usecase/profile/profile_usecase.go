package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devconnect/internal/domain/profile"
	"devconnect/pkg/apperror"
	"devconnect/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		logger:      log,
	}
}

// UpsertInput is a sparse field set: empty strings mean "leave as is"
// when a profile already exists.
type UpsertInput struct {
	UserID         uuid.UUID
	Handle         string
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

// ExecuteUpsert creates the caller's profile on first submission and
// sparse-patches it on every one after that. The handle uniqueness
// check runs on creation only.
func (uc *ProfileUseCase) ExecuteUpsert(ctx context.Context, input UpsertInput) (*profile.Profile, error) {
	existing, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, apperror.NewInternal("failed to look up profile", err)
	}

	if existing != nil {
		applyPatch(existing, input)
		if err := uc.profileRepo.Update(ctx, existing); err != nil {
			return nil, apperror.NewInternal("failed to update profile", err)
		}
		return existing, nil
	}

	if _, err := uc.profileRepo.FindByHandle(ctx, input.Handle); err == nil {
		return nil, apperror.NewConflict("that handle already exists")
	} else if !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, apperror.NewInternal("failed to check handle", err)
	}

	now := time.Now().UTC()
	p := &profile.Profile{
		UserID:         input.UserID,
		Handle:         input.Handle,
		Company:        input.Company,
		Website:        input.Website,
		Location:       input.Location,
		Bio:            input.Bio,
		Status:         input.Status,
		GithubUsername: input.GithubUsername,
		Skills:         profile.SplitSkills(input.Skills),
		Social:         buildSocial(input),
		Experience:     []profile.Experience{},
		Education:      []profile.Education{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.profileRepo.Create(ctx, p); err != nil {
		if errors.Is(err, profile.ErrHandleTaken) {
			return nil, apperror.NewConflict("that handle already exists")
		}
		return nil, apperror.NewInternal("failed to create profile", err)
	}
	return p, nil
}

// applyPatch copies only the supplied fields onto the stored profile.
// The social sub-record is rebuilt as a whole from the supplied links.
func applyPatch(p *profile.Profile, input UpsertInput) {
	if input.Handle != "" {
		p.Handle = input.Handle
	}
	if input.Company != "" {
		p.Company = input.Company
	}
	if input.Website != "" {
		p.Website = input.Website
	}
	if input.Location != "" {
		p.Location = input.Location
	}
	if input.Bio != "" {
		p.Bio = input.Bio
	}
	if input.Status != "" {
		p.Status = input.Status
	}
	if input.GithubUsername != "" {
		p.GithubUsername = input.GithubUsername
	}
	if input.Skills != "" {
		p.Skills = profile.SplitSkills(input.Skills)
	}
	p.Social = buildSocial(input)
	p.UpdatedAt = time.Now().UTC()
}

func buildSocial(input UpsertInput) profile.SocialLinks {
	return profile.SocialLinks{
		Youtube:   input.Youtube,
		Twitter:   input.Twitter,
		Facebook:  input.Facebook,
		Linkedin:  input.Linkedin,
		Instagram: input.Instagram,
	}
}

func (uc *ProfileUseCase) ExecuteGetMine(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.findByUserID(ctx, userID)
}

func (uc *ProfileUseCase) ExecuteGetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	return uc.findByUserID(ctx, userID)
}

func (uc *ProfileUseCase) ExecuteGetByHandle(ctx context.Context, handle string) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", handle)
		}
		return nil, apperror.NewInternal("failed to look up profile", err)
	}
	return p, nil
}

func (uc *ProfileUseCase) ExecuteGetAll(ctx context.Context) ([]*profile.Profile, error) {
	profiles, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	return profiles, nil
}

// ExecuteDelete removes the caller's profile and user account in one
// transactional cascade.
func (uc *ProfileUseCase) ExecuteDelete(ctx context.Context, userID uuid.UUID) error {
	if err := uc.profileRepo.DeleteWithUser(ctx, userID); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return apperror.NewNotFound("profile", userID.String())
		}
		uc.logger.Error("cascade delete failed", err, zap.String("user_id", userID.String()))
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}

func (uc *ProfileUseCase) findByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("profile", userID.String())
		}
		return nil, apperror.NewInternal("failed to look up profile", err)
	}
	return p, nil
}

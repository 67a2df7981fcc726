package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/domain/profile"
	"devconnect/pkg/apperror"
)

type AddExperienceInput struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

// ExecuteAddExperience prepends a new experience entry to the caller's
// profile. The profile must already exist.
func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input AddExperienceInput) (*profile.Profile, error) {
	p, err := uc.findByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.AddExperience(profile.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	})

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save experience", err)
	}
	return p, nil
}

// ExecuteRemoveExperience removes the entry with the given id. A
// missing id is a NotFound error, never a silent no-op.
func (uc *ProfileUseCase) ExecuteRemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveExperience(entryID); err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			return nil, apperror.NewNotFound("experience", entryID.String())
		}
		return nil, apperror.NewInternal("failed to remove experience", err)
	}

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save profile", err)
	}
	return p, nil
}

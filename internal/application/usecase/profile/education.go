package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/domain/profile"
	"devconnect/pkg/apperror"
)

type AddEducationInput struct {
	UserID       uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input AddEducationInput) (*profile.Profile, error) {
	p, err := uc.findByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.AddEducation(profile.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	})

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save education", err)
	}
	return p, nil
}

func (uc *ProfileUseCase) ExecuteRemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveEducation(entryID); err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			return nil, apperror.NewNotFound("education", entryID.String())
		}
		return nil, apperror.NewInternal("failed to remove education", err)
	}

	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save profile", err)
	}
	return p, nil
}

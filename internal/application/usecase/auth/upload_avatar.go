package auth

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"devconnect/internal/application/service"
	"devconnect/internal/domain/user"
	"devconnect/pkg/apperror"
)

type UploadAvatarUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
}

func NewUploadAvatarUseCase(repo user.Repository, uploader service.Uploader) *UploadAvatarUseCase {
	return &UploadAvatarUseCase{userRepo: repo, uploader: uploader}
}

type UploadAvatarInput struct {
	UserID uuid.UUID
	File   io.Reader
}

type UploadAvatarOutput struct {
	AvatarURL string
}

func (uc *UploadAvatarUseCase) Execute(ctx context.Context, input UploadAvatarInput) (*UploadAvatarOutput, error) {
	folder := "avatars"
	publicID := input.UserID.String()

	url, err := uc.uploader.Upload(ctx, input.File, folder, publicID)
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	if err := uc.userRepo.UpdateAvatar(ctx, input.UserID, url); err != nil {
		// best effort cleanup of the now-dangling upload
		go uc.uploader.Delete(context.Background(), fmt.Sprintf("%s/%s", folder, publicID))
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to persist avatar", err)
	}

	return &UploadAvatarOutput{AvatarURL: url}, nil
}

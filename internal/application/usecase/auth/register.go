package auth

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devconnect/internal/domain/user"
	"devconnect/pkg/apperror"
	"devconnect/pkg/auth"
	"devconnect/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	AccessToken string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Avatar:       gravatarURL(input.Email),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.userRepo.Insert(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.NewConflict("user already exists")
		}
		return nil, apperror.NewInternal("failed to create user", err)
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("failed to generate token", err, zap.String("user_id", u.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &RegisterOutput{AccessToken: token}, nil
}

// gravatarURL builds the default avatar for a fresh account from the
// email hash, so every user starts with a usable image.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}

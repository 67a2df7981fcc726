package auth

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"devconnect/internal/domain/user"
	"devconnect/pkg/apperror"
	"devconnect/pkg/auth"
	"devconnect/pkg/logger"
)

var tracer = otel.Tracer("auth_usecase")

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewUnauthorized("invalid credentials", nil)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to look up user", err)
	}

	if !auth.CheckPasswordHash(input.Password, u.PasswordHash) {
		return nil, apperror.NewUnauthorized("invalid credentials", nil)
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("failed to generate token", err, zap.String("user_id", u.ID.String()))
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	span.SetAttributes(attribute.String("user_id", u.ID.String()))
	return &LoginOutput{AccessToken: token}, nil
}

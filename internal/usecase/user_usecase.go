package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wyg1997/VoiceRoute/internal/domain"
)

// UserUseCase defines business logic for user operations
type UserUseCase interface {
	// Login checks credentials and returns the matching user
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// UserUseCaseImpl implements UserUseCase
type UserUseCaseImpl struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo domain.UserRepository, logger *zap.Logger) UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login returns domain.ErrInvalidCredentials for unknown users or wrong
// passwords, and wraps any storage failure
func (u *UserUseCaseImpl) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := u.userRepo.Authenticate(ctx, email, password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		u.logger.Info("login rejected", zap.String("email", email))
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	u.logger.Info("login succeeded", zap.Int64("user_id", user.ID))
	return user, nil
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wyg1997/VoiceRoute/internal/domain"
)

func TestUserUseCase_Login(t *testing.T) {
	users := &fakeUsers{users: map[string]string{"rider@example.com": "secret"}}
	uc := NewUserUseCase(users, zap.NewNop())
	ctx := context.Background()

	user, err := uc.Login(ctx, "rider@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "rider@example.com", user.Email)

	_, err = uc.Login(ctx, "rider@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserUseCase_LoginStorageError(t *testing.T) {
	uc := NewUserUseCase(&fakeUsers{err: errors.New("connection refused")}, zap.NewNop())

	_, err := uc.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

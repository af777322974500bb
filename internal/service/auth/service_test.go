package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/labfetch/labfetch-api/internal/model"
	"github.com/labfetch/labfetch-api/internal/testutil"
	"github.com/labfetch/labfetch-api/pkg/auth"
	apperrors "github.com/labfetch/labfetch-api/pkg/errors"
	"github.com/labfetch/labfetch-api/pkg/security"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	admins := testutil.NewAdminRepo()
	_, err = admins.Upsert(context.Background(), "lab", hash)
	require.NoError(t, err)

	return NewService(admins, hasher, auth.NewTokenManager(testutil.TestJWTSecret, time.Hour), zerolog.Nop())
}

func appCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: " lab ", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "lab", resp.Admin.Username)

	principal, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Admin.AdminID, principal.AdminID)
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(t)
	tests := []struct {
		name string
		req  model.LoginRequest
		code apperrors.ErrorCode
	}{
		{"missing password", model.LoginRequest{Username: "lab"}, apperrors.ErrBadRequest},
		{"blank username", model.LoginRequest{Username: "  ", Password: "x"}, apperrors.ErrBadRequest},
		{"unknown admin", model.LoginRequest{Username: "nobody", Password: "correct-horse"}, apperrors.ErrUnauthorized},
		{"wrong password", model.LoginRequest{Username: "lab", Password: "wrong-horse"}, apperrors.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			assert.Equal(t, tt.code, appCode(t, err))
		})
	}
}

func TestValidateToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("garbage")
	assert.Equal(t, apperrors.ErrForbidden, appCode(t, err))

	expired := testutil.ExpiredToken(t, 1, "lab")
	_, err = svc.ValidateToken(expired)
	assert.Equal(t, apperrors.ErrTokenExpired, appCode(t, err))
}

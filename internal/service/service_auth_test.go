package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/mock"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceUnderTest(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	return NewAuthService(repo, testAuthConfig(), logger.Nop()), repo
}

func storedAdmin(t *testing.T, password string) models.User {
	t.Helper()
	hashed, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{
		UserID:         "0190a0d4-0000-7000-8000-000000000001",
		Email:          "admin@nearmate.local",
		Name:           "Administrator",
		Role:           "admin",
		Status:         models.StatusActive,
		HashedPassword: hashed,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo := newAuthServiceUnderTest(t)
	admin := storedAdmin(t, "admin123")

	repo.EXPECT().FindUserByEmail(gomock.Any(), "admin@nearmate.local").Return(admin, nil)

	user, err := svc.Login(context.Background(), " admin@nearmate.local ", "admin123")

	require.NoError(t, err)
	assert.Equal(t, admin.UserID, user.UserID)
	assert.Equal(t, "admin", user.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo := newAuthServiceUnderTest(t)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "admin@nearmate.local").Return(storedAdmin(t, "admin123"), nil)

	_, err := svc.Login(context.Background(), "admin@nearmate.local", "nope")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, repo := newAuthServiceUnderTest(t)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "ghost@nearmate.local").Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.Login(context.Background(), "ghost@nearmate.local", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _ := newAuthServiceUnderTest(t)

	cases := []struct{ email, password string }{
		{"", "secret"},
		{"admin@nearmate.local", ""},
		{"   ", "secret"},
	}
	for _, tc := range cases {
		_, err := svc.Login(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestAuthService_Login_StorageFailure(t *testing.T) {
	svc, repo := newAuthServiceUnderTest(t)
	dbErr := errors.New("connection refused")

	repo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, dbErr)

	_, err := svc.Login(context.Background(), "admin@nearmate.local", "admin123")

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

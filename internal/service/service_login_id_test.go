package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/mock"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLoginIDPrefix(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"John Doe", "JD"},
		{"jane roe", "JR"},
		{"Madonna", "MM"},
		{"  Mary  Ann   Smith ", "MS"},
		{"", "XX"},
		{"   ", "XX"},
		{"élodie durand", "ÉD"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LoginIDPrefix(c.name), "name %q", c.name)
	}
}

func newLoginIDServiceUnderTest(t *testing.T) (LoginIDService, *mock.MockAccountRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockAccountRepository(ctrl)
	return NewLoginIDService(repo, logger.Nop()), repo
}

func TestLoginIDService_Allocate(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"first of its prefix", nil, "JD000001"},
		{"after highest", []string{"JD000001", "JD000007", "JD000003"}, "JD000008"},
		{"ignores non-numeric residue", []string{"JD000002", "JDX", "JD", "JDabc"}, "JD000003"},
		{"parses leading digits", []string{"JD000004-old"}, "JD000005"},
		{"grows past six digits", []string{"JD999999"}, "JD1000000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newLoginIDServiceUnderTest(t)
			repo.EXPECT().ListLoginIDs(gomock.Any(), "JD").Return(tc.existing, nil)

			got, err := svc.Allocate(context.Background(), "John Doe")

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoginIDService_Allocate_StorageFailure(t *testing.T) {
	svc, repo := newLoginIDServiceUnderTest(t)
	repo.EXPECT().ListLoginIDs(gomock.Any(), "JD").Return(nil, errors.New("boom"))

	_, err := svc.Allocate(context.Background(), "John Doe")

	assert.Error(t, err)
}

func TestLoginIDService_AssignLoginID_RetriesOnCollision(t *testing.T) {
	svc, repo := newLoginIDServiceUnderTest(t)

	gomock.InOrder(
		repo.EXPECT().ListLoginIDs(gomock.Any(), "JD").Return([]string{"JD000001"}, nil),
		repo.EXPECT().ListLoginIDs(gomock.Any(), "JD").Return([]string{"JD000001", "JD000002"}, nil),
	)

	var attempts []string
	got, err := svc.AssignLoginID(context.Background(), "John Doe", func(_ context.Context, loginID string) error {
		attempts = append(attempts, loginID)
		if len(attempts) == 1 {
			return fmt.Errorf("insert: %w", store.ErrLoginIDTaken)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "JD000003", got)
	assert.Equal(t, []string{"JD000002", "JD000003"}, attempts)
}

func TestLoginIDService_AssignLoginID_RetriesOnTransientFailure(t *testing.T) {
	svc, repo := newLoginIDServiceUnderTest(t)
	repo.EXPECT().ListLoginIDs(gomock.Any(), "JR").Return(nil, nil).Times(2)

	calls := 0
	got, err := svc.AssignLoginID(context.Background(), "Jane Roe", func(context.Context, string) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("%w: database is locked", store.ErrTransientFailure)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "JR000001", got)
}

func TestLoginIDService_AssignLoginID_GivesUp(t *testing.T) {
	svc, repo := newLoginIDServiceUnderTest(t)
	repo.EXPECT().ListLoginIDs(gomock.Any(), "JD").Return(nil, nil).Times(maxLoginIDAttempts)

	_, err := svc.AssignLoginID(context.Background(), "John Doe", func(context.Context, string) error {
		return store.ErrLoginIDTaken
	})

	assert.ErrorIs(t, err, ErrLoginIDAllocationFailed)
}

func TestLoginIDService_AssignLoginID_OtherErrorsAreNotRetried(t *testing.T) {
	svc, repo := newLoginIDServiceUnderTest(t)
	repo.EXPECT().ListLoginIDs(gomock.Any(), "JD").Return(nil, nil).Times(1)

	_, err := svc.AssignLoginID(context.Background(), "John Doe", func(context.Context, string) error {
		return store.ErrPhoneAlreadyExists
	})

	assert.ErrorIs(t, err, store.ErrPhoneAlreadyExists)
}

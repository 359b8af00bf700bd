package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/adapter"
	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqlitePhone = "9990001111"

type sqliteFixture struct {
	otp      *otpService
	accounts AccountService
}

// newSQLiteFixture wires the OTP and account services over a migrated,
// file-backed SQLite database. Generated codes are echoed back so tests can
// verify them.
func newSQLiteFixture(t *testing.T) sqliteFixture {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "nearmate.db")
	storages, err := store.NewStorages(context.Background(), config.DB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	cfg := testAuthConfig()
	cfg.ExposeOTP = true

	otp := NewOTPService(storages.OTPRepository, adapter.NewLogSender(logger.Nop()), cfg, logger.Nop()).(*otpService)
	loginIDs := NewLoginIDService(storages.AccountRepository, logger.Nop())

	return sqliteFixture{
		otp:      otp,
		accounts: NewAccountService(storages.AccountRepository, storages.UserRepository, loginIDs, cfg, logger.Nop()),
	}
}

func (f sqliteFixture) requestCode(t *testing.T) string {
	t.Helper()

	res, err := f.otp.RequestOTP(context.Background(), sqlitePhone, models.ActorEndUser, models.PurposeLogin)
	require.NoError(t, err)
	require.Len(t, res.Code, 6)
	return res.Code
}

func TestOTPService_SQLite_CodeIsSingleUse(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()
	code := f.requestCode(t)

	otp, err := f.otp.VerifyOTP(ctx, sqlitePhone, code, models.ActorEndUser, models.PurposeLogin)
	require.NoError(t, err)
	assert.True(t, otp.Used)

	_, err = f.otp.VerifyOTP(ctx, sqlitePhone, code, models.ActorEndUser, models.PurposeLogin)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
}

func TestOTPService_SQLite_CodeIsScoped(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()
	code := f.requestCode(t)

	tests := []struct {
		name    string
		phone   string
		actor   models.ActorKind
		purpose models.OTPPurpose
	}{
		{"other purpose", sqlitePhone, models.ActorEndUser, models.PurposeRegister},
		{"other actor", sqlitePhone, models.ActorPartner, models.PurposeLogin},
		{"other phone", "9990002222", models.ActorEndUser, models.PurposeLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.otp.VerifyOTP(ctx, tt.phone, code, tt.actor, tt.purpose)
			assert.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
		})
	}

	// mismatched attempts leave the code usable
	_, err := f.otp.VerifyOTP(ctx, sqlitePhone, code, models.ActorEndUser, models.PurposeLogin)
	assert.NoError(t, err)
}

func TestOTPService_SQLite_ExpiredCodeIsRejected(t *testing.T) {
	f := newSQLiteFixture(t)
	code := f.requestCode(t)

	f.otp.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

	_, err := f.otp.VerifyOTP(context.Background(), sqlitePhone, code, models.ActorEndUser, models.PurposeLogin)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
}

func TestOTPService_SQLite_ConcurrentVerifyHasOneWinner(t *testing.T) {
	f := newSQLiteFixture(t)
	code := f.requestCode(t)

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.otp.VerifyOTP(context.Background(), sqlitePhone, code, models.ActorEndUser, models.PurposeLogin)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
	}
	assert.Equal(t, 1, successes)
}

func TestOTPService_SQLite_ClearExpired(t *testing.T) {
	f := newSQLiteFixture(t)
	ctx := context.Background()

	// issued ten minutes ago, expired five minutes ago
	f.otp.now = func() time.Time { return time.Now().Add(-10 * time.Minute) }
	f.requestCode(t)

	f.otp.now = time.Now
	f.requestCode(t)

	deleted, err := f.otp.ClearExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	list, err := f.otp.ListOTPs(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Codes, 1)
	assert.Equal(t, models.OTPPending, list.Codes[0].Status(time.Now()))
}

func TestAccountService_SQLite_ConcurrentPartnersShareAPrefix(t *testing.T) {
	f := newSQLiteFixture(t)

	const partners = 4
	loginIDs := make([]string, partners)
	errs := make([]error, partners)

	var wg sync.WaitGroup
	for i := range partners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			phone := fmt.Sprintf("99900000%02d", i)
			account, created, err := f.accounts.FindOrCreate(context.Background(), phone, models.ActorPartner, &models.RegistrationData{Name: "John Doe"})
			errs[i] = err
			if err == nil && created {
				loginIDs[i] = account.LoginID
			}
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "partner %d", i)
	}

	sort.Strings(loginIDs)
	assert.Equal(t, []string{"JD000001", "JD000002", "JD000003", "JD000004"}, loginIDs)
}

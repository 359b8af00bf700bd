package store

import (
	"context"
	"time"

	"github.com/MKhiriev/nearmate-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a driver error is worth a retry.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository stores back-office administrators.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// OTPRepository stores one-time codes. ConsumeOTP must mark at most one
// pending code as used per call and never the same code twice.
type OTPRepository interface {
	CreateOTP(ctx context.Context, otp models.OTPCode) (models.OTPCode, error)
	ConsumeOTP(ctx context.Context, lookup models.OTPLookup, now time.Time) (models.OTPCode, error)
	ListOTPs(ctx context.Context, limit int) ([]models.OTPCode, error)
	CountOTPs(ctx context.Context) (int64, error)
	DeleteExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

// AccountRepository stores end users and partners, both keyed by phone.
type AccountRepository interface {
	FindAccountByPhone(ctx context.Context, kind models.ActorKind, phone string) (models.Account, error)
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	ListLoginIDs(ctx context.Context, prefix string) ([]string, error)
	ListPartnersWithoutLoginID(ctx context.Context) ([]models.Account, error)
	SetPartnerLoginID(ctx context.Context, partnerID, loginID string) error
}

package service

import (
	"context"

	"github.com/MKhiriev/nearmate-api/models"
)

// AuthService verifies administrator credentials.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
}

// TokenService mints and verifies RS256 access/refresh token pairs.
type TokenService interface {
	IssueTokens(ctx context.Context, subjectID, role string) (models.TokenPair, error)
	ParseToken(ctx context.Context, tokenString string) (models.Claims, error)
	// CheckKeys loads both keys and round-trips a probe token through them.
	CheckKeys(ctx context.Context) error
}

// OTPService manages the lifecycle of one-time codes.
type OTPService interface {
	RequestOTP(ctx context.Context, phone string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPRequestResult, error)
	VerifyOTP(ctx context.Context, phone, code string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPCode, error)
	ListOTPs(ctx context.Context, limit int) (models.OTPList, error)
	ClearExpired(ctx context.Context) (int64, error)
}

// LoginIDService allocates human-readable partner login ids.
type LoginIDService interface {
	Allocate(ctx context.Context, fullName string) (string, error)
	// AssignLoginID allocates an id and hands it to persist, retrying with a
	// fresh id while persist reports a collision.
	AssignLoginID(ctx context.Context, fullName string, persist func(ctx context.Context, loginID string) error) (string, error)
}

// AccountService resolves end users and partners by phone number.
type AccountService interface {
	FindExisting(ctx context.Context, phone string, actor models.ActorKind) (models.Account, error)
	FindOrCreate(ctx context.Context, phone string, actor models.ActorKind, data *models.RegistrationData) (models.Account, bool, error)
	CheckPhoneRegistration(ctx context.Context, phone string, actor models.ActorKind) (models.CheckPhoneResponse, error)
	BackfillLoginIDs(ctx context.Context) (int, error)
	BootstrapAdmin(ctx context.Context, email, password string) (models.User, bool, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
)

// authService is the concrete implementation of AuthService.
// It verifies administrator email/password pairs against bcrypt hashes
// kept by a UserRepository.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// dummyHash is compared against when the email is unknown so that a
	// missing account costs the same bcrypt round as a wrong password.
	dummyHash string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	dummyHash, err := utils.HashPassword("nearmate-placeholder", cfg.BcryptCost)
	if err != nil {
		logger.Warn().Err(err).Msg("placeholder hash could not be computed")
	}

	return &authService{
		userRepository: userRepository,
		dummyHash:      dummyHash,
		logger:         logger,
	}
}

// Login authenticates an administrator.
//
// Returns the stored user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrInvalidCredentials if the email is unknown or the password does not
//     match. Both cases are indistinguishable to the caller.
//   - A wrapped storage error if the repository lookup fails.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		if a.dummyHash != "" {
			_ = utils.ComparePassword(a.dummyHash, password)
		}
		log.Debug().Str("email", email).Msg("login for unknown email")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = utils.ComparePassword(foundUser.HashedPassword, password); err != nil {
		log.Debug().Err(err).Str("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

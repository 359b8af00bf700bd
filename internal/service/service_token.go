package service

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
)

// tokenService signs token pairs with an RSA private key and verifies them
// with the matching public key. Key material is resolved on every call so
// that rotated key files are picked up without a restart.
type tokenService struct {
	privateKey utils.KeySource
	publicKey  utils.KeySource

	// issuer is the optional "iss" claim; when set it is also enforced on parse.
	issuer string

	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time

	logger *logger.Logger
}

func NewTokenService(cfg config.Auth, logger *logger.Logger) TokenService {
	return &tokenService{
		privateKey: utils.KeySource{Inline: cfg.JWTPrivateKey, Path: cfg.JWTPrivateKeyPath},
		publicKey:  utils.KeySource{Inline: cfg.JWTPublicKey, Path: cfg.JWTPublicKeyPath},
		issuer:     cfg.TokenIssuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// IssueTokens returns an access token and a refresh token carrying the same
// {sub, role} payload and differing only in expiry.
func (t *tokenService) IssueTokens(ctx context.Context, subjectID, role string) (models.TokenPair, error) {
	if subjectID == "" {
		return models.TokenPair{}, ErrInvalidDataProvided
	}

	key, err := t.signingKey()
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("signing key unavailable")
		return models.TokenPair{}, err
	}

	issuedAt := t.now()

	accessToken, err := utils.GenerateRS256Token(key, t.issuer, subjectID, role, issuedAt, t.accessTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateRS256Token(key, t.issuer, subjectID, role, issuedAt, t.refreshTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ParseToken validates the signature, algorithm, expiry and issuer of
// tokenString. Every validation failure is reported as
// ErrTokenIsExpiredOrInvalid; a missing verification key is a configuration
// error.
func (t *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Claims, error) {
	key, err := t.verificationKey()
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("verification key unavailable")
		return models.Claims{}, err
	}

	claims, err := utils.ValidateAndParseRS256Token(tokenString, key, t.issuer)
	if err != nil {
		return models.Claims{}, ErrTokenIsExpiredOrInvalid
	}

	return claims, nil
}

func (t *tokenService) CheckKeys(ctx context.Context) error {
	pair, err := t.IssueTokens(ctx, "key-probe", "probe")
	if err != nil {
		return err
	}

	if _, err = t.ParseToken(ctx, pair.AccessToken); err != nil {
		return fmt.Errorf("%w: public key does not match private key", ErrConfiguration)
	}

	return nil
}

func (t *tokenService) signingKey() (*rsa.PrivateKey, error) {
	key, err := utils.LoadRSAPrivateKey(t.privateKey)
	if errors.Is(err, utils.ErrKeyNotConfigured) {
		return nil, ErrKeyNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return key, nil
}

func (t *tokenService) verificationKey() (*rsa.PublicKey, error) {
	key, err := utils.LoadRSAPublicKey(t.publicKey, t.privateKey)
	if errors.Is(err, utils.ErrKeyNotConfigured) {
		return nil, ErrKeyNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return key, nil
}

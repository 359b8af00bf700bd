package utils

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/nearmate-api/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateRS256Token signs a JWT carrying {sub, role} with the given RSA
// private key.
//
// The token includes the following claims:
//   - Subject   (sub): the account identifier
//   - role           : the account role
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus ttl
//   - Issuer    (iss): only when issuer is non-empty
//
// Returns an error if subject is empty, ttl is not positive, key is nil, or
// signing fails.
//
// Example usage:
//
//	token, err := utils.GenerateRS256Token(key, "nearmate", "42", "admin", time.Now(), time.Hour)
func GenerateRS256Token(key *rsa.PrivateKey, issuer, subject, role string, issuedAt time.Time, ttl time.Duration) (string, error) {
	if key == nil || subject == "" || ttl <= 0 {
		return "", errors.New("invalid params for generating JWT Token")
	}

	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseRS256Token verifies the signature of tokenString with the
// RSA public key and returns its claims.
//
// Validation includes:
//   - Signing method pinned to RS256 (HS256 and "none" are rejected)
//   - Expiration (exp) claim check
//   - Issuer (iss) claim check when issuer is non-empty
//   - Subject (sub) claim presence
func ValidateAndParseRS256Token(tokenString string, key *rsa.PublicKey, issuer string) (models.Claims, error) {
	if key == nil {
		return models.Claims{}, errors.New("nil verification key")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return key, nil
	}, opts...)
	if err != nil {
		return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Claims{}, errors.New("empty subject error")
	}

	return *claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

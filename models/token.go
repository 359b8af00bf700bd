package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is an access token and a refresh token minted from the same
// payload and signed with the same private key.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Claims is the JWT payload: the registered claims (sub, iat, exp, iss)
// plus the role of the subject.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// SubjectID returns the "sub" claim.
func (c Claims) SubjectID() string {
	return c.Subject
}

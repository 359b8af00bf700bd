package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRS256Token_RoundTrip(t *testing.T) {
	key, _, _ := newTestRSAKey(t)
	now := time.Now()

	token, err := GenerateRS256Token(key, "nearmate", "user-1", "admin", now, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAndParseRS256Token(token, &key.PublicKey, "nearmate")
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.SubjectID())
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "nearmate", claims.Issuer)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestGenerateRS256Token_InvalidParams(t *testing.T) {
	key, _, _ := newTestRSAKey(t)

	tests := []struct {
		name    string
		subject string
		ttl     time.Duration
		nilKey  bool
	}{
		{"empty subject", "", time.Hour, false},
		{"zero ttl", "sub", 0, false},
		{"nil key", "sub", time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := key
			if tt.nilKey {
				k = nil
			}
			_, err := GenerateRS256Token(k, "", tt.subject, "admin", time.Now(), tt.ttl)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseRS256Token_Tampered(t *testing.T) {
	key, _, _ := newTestRSAKey(t)
	token, err := GenerateRS256Token(key, "", "user-1", "admin", time.Now(), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = ValidateAndParseRS256Token(tampered, &key.PublicKey, "")
	assert.Error(t, err)
}

func TestValidateAndParseRS256Token_WrongKey(t *testing.T) {
	key, _, _ := newTestRSAKey(t)
	other, _, _ := newTestRSAKey(t)
	token, err := GenerateRS256Token(key, "", "user-1", "admin", time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ValidateAndParseRS256Token(token, &other.PublicKey, "")
	assert.Error(t, err)
}

func TestValidateAndParseRS256Token_Expired(t *testing.T) {
	key, _, _ := newTestRSAKey(t)
	token, err := GenerateRS256Token(key, "", "user-1", "admin", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = ValidateAndParseRS256Token(token, &key.PublicKey, "")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseRS256Token_WrongIssuer(t *testing.T) {
	key, _, _ := newTestRSAKey(t)
	token, err := GenerateRS256Token(key, "someone-else", "user-1", "admin", time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ValidateAndParseRS256Token(token, &key.PublicKey, "nearmate")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateAndParseRS256Token_RejectsHS256(t *testing.T) {
	key, _, _ := newTestRSAKey(t)
	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := hs.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = ValidateAndParseRS256Token(token, &key.PublicKey, "")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateAndParseRS256Token_Malformed(t *testing.T) {
	key, _, _ := newTestRSAKey(t)

	_, err := ValidateAndParseRS256Token("not.a.jwt", &key.PublicKey, "")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"extra spaces", "  Bearer   abc  ", "abc", false},
		{"empty", "", "", true},
		{"scheme only", "Bearer", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"too many parts", "Bearer a b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

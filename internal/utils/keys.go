package utils

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrKeyNotConfigured is returned when neither an inline PEM nor a PEM file
// path is available for a key.
var ErrKeyNotConfigured = errors.New("key material not configured")

// KeySource locates one PEM-encoded key: inline text first, then a file.
type KeySource struct {
	// Inline holds the PEM text. Values that do not contain a PEM "BEGIN"
	// marker are ignored.
	Inline string
	// Path is a PEM file read on every call.
	Path string
}

// inlinePEM returns the inline key with literal "\n" sequences turned into
// newlines, as produced by single-line environment variables.
func (s KeySource) inlinePEM() string {
	if !strings.Contains(s.Inline, "BEGIN") {
		return ""
	}
	return strings.ReplaceAll(s.Inline, `\n`, "\n")
}

// Load returns the PEM bytes of the source. A Path pointing at a file that
// does not exist counts as not configured, so the next source in the chain
// gets its turn.
func (s KeySource) Load() ([]byte, error) {
	if pem := s.inlinePEM(); pem != "" {
		return []byte(pem), nil
	}

	if s.Path != "" {
		data, err := os.ReadFile(s.Path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrKeyNotConfigured, s.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading key file %s: %w", s.Path, err)
		}
		return data, nil
	}

	return nil, ErrKeyNotConfigured
}

// LoadRSAPrivateKey resolves and parses an RSA private key (PKCS#1 or PKCS#8).
func LoadRSAPrivateKey(src KeySource) (*rsa.PrivateKey, error) {
	data, err := src.Load()
	if err != nil {
		return nil, err
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing RSA private key: %w", err)
	}

	return key, nil
}

// LoadRSAPublicKey resolves the verification key in this order: public
// inline, public file, private inline, private file. Missing files are
// skipped. A private key found in the last two steps has its public half
// returned; that fallback exists for development setups.
func LoadRSAPublicKey(public, private KeySource) (*rsa.PublicKey, error) {
	data, err := public.Load()
	switch {
	case err == nil:
		key, err := jwt.ParseRSAPublicKeyFromPEM(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing RSA public key: %w", err)
		}
		return key, nil
	case !errors.Is(err, ErrKeyNotConfigured):
		return nil, err
	}

	privateKey, err := LoadRSAPrivateKey(private)
	if err != nil {
		return nil, err
	}

	return &privateKey.PublicKey, nil
}

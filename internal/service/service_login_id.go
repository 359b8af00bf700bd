package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/store"
)

const (
	loginIDDigits      = 6
	maxLoginIDAttempts = 5
)

// loginIDService derives partner login ids of the form JD000001 from the
// initials of the partner's name and the highest suffix already in use.
type loginIDService struct {
	accountRepository store.AccountRepository
	logger            *logger.Logger
}

func NewLoginIDService(accountRepository store.AccountRepository, logger *logger.Logger) LoginIDService {
	return &loginIDService{
		accountRepository: accountRepository,
		logger:            logger,
	}
}

// LoginIDPrefix returns the upper-cased initials of the first and the last
// word of fullName. A single word supplies both letters; an empty name
// yields "XX".
func LoginIDPrefix(fullName string) string {
	parts := strings.Fields(fullName)

	first, last := 'X', 'X'
	if len(parts) > 0 {
		first, _ = utf8.DecodeRuneInString(parts[0])
		last, _ = utf8.DecodeRuneInString(parts[len(parts)-1])
	}

	return string(unicode.ToUpper(first)) + string(unicode.ToUpper(last))
}

// Allocate returns the next free id for fullName's prefix. The result is not
// reserved; concurrent callers may receive the same id, the unique index on
// partners.login_id decides the winner.
func (s *loginIDService) Allocate(ctx context.Context, fullName string) (string, error) {
	prefix := LoginIDPrefix(fullName)

	ids, err := s.accountRepository.ListLoginIDs(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("listing login ids failed: %w", err)
	}

	highest := 0
	for _, id := range ids {
		if n, ok := loginIDSuffix(id, prefix); ok && n > highest {
			highest = n
		}
	}

	return fmt.Sprintf("%s%0*d", prefix, loginIDDigits, highest+1), nil
}

func (s *loginIDService) AssignLoginID(ctx context.Context, fullName string, persist func(ctx context.Context, loginID string) error) (string, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= maxLoginIDAttempts; attempt++ {
		loginID, err := s.Allocate(ctx, fullName)
		if err != nil {
			if store.IsRetryable(err) {
				log.Warn().Err(err).Int("attempt", attempt).Msg("login id allocation failed, retrying")
				continue
			}
			return "", err
		}

		err = persist(ctx, loginID)
		if err == nil {
			return loginID, nil
		}
		if !errors.Is(err, store.ErrLoginIDTaken) && !store.IsRetryable(err) {
			return "", err
		}

		log.Warn().Err(err).Str("login_id", loginID).Int("attempt", attempt).Msg("login id collision, retrying")
	}

	return "", ErrLoginIDAllocationFailed
}

// loginIDSuffix parses the leading digits that follow prefix. Ids without
// any digits after the prefix are ignored.
func loginIDSuffix(loginID, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(loginID, prefix)
	if !ok {
		return 0, false
	}

	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(rest)
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

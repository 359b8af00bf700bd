package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/adapter"
	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
)

const (
	defaultOTPListLimit = 10
	maxOTPListLimit     = 100
)

// otpService issues one-time codes, stores their keyed hashes and consumes
// them at most once.
type otpService struct {
	otpRepository store.OTPRepository
	sender        adapter.OTPSender

	// hashKey keys the HMAC under which codes are stored.
	hashKey string
	ttl     time.Duration

	// exposeCode echoes generated codes back to the caller. Development only.
	exposeCode bool

	generate func() (string, error)
	now      func() time.Time

	logger *logger.Logger
}

func NewOTPService(otpRepository store.OTPRepository, sender adapter.OTPSender, cfg config.Auth, logger *logger.Logger) OTPService {
	return &otpService{
		otpRepository: otpRepository,
		sender:        sender,
		hashKey:       cfg.OTPHashKey,
		ttl:           cfg.OTPTTL,
		exposeCode:    cfg.ExposeOTP,
		generate:      utils.GenerateOTPCode,
		now:           time.Now,
		logger:        logger,
	}
}

// RequestOTP generates a code for (phone, actor, purpose), persists its hash
// and hands the plain code to the delivery channel. Previous pending codes
// stay valid until they expire.
func (s *otpService) RequestOTP(ctx context.Context, phone string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPRequestResult, error) {
	log := logger.FromContext(ctx)

	phone = strings.TrimSpace(phone)
	if phone == "" || !validActor(actor) || !validPurpose(purpose) {
		log.Error().Str("actor", actor.String()).Str("purpose", string(purpose)).Msg("invalid otp request")
		return models.OTPRequestResult{}, ErrInvalidDataProvided
	}

	code, err := s.generate()
	if err != nil {
		return models.OTPRequestResult{}, fmt.Errorf("otp generation failed: %w", err)
	}

	now := s.now().UTC()
	otp, err := s.otpRepository.CreateOTP(ctx, models.OTPCode{
		Phone:     phone,
		CodeHash:  s.hash(code),
		Purpose:   purpose,
		Actor:     actor,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	})
	if err != nil {
		log.Err(err).Msg("saving otp failed")
		return models.OTPRequestResult{}, fmt.Errorf("saving otp failed: %w", err)
	}

	err = s.sender.SendOTP(ctx, models.OTPMessage{
		Phone:     phone,
		Code:      code,
		Purpose:   purpose,
		Actor:     actor,
		ExpiresAt: otp.ExpiresAt,
	})
	if err != nil {
		log.Err(err).Str("otp_id", otp.ID).Msg("otp delivery failed")
		return models.OTPRequestResult{}, fmt.Errorf("%w: %w", ErrOTPDeliveryFailed, err)
	}

	result := models.OTPRequestResult{
		OTPID:     otp.ID,
		Phone:     phone,
		Actor:     actor,
		ExpiresIn: s.ttl,
	}
	if s.exposeCode {
		result.Code = code
	}

	return result, nil
}

// VerifyOTP consumes the newest pending code matching all four values.
// Concurrent calls with the same code see exactly one success.
func (s *otpService) VerifyOTP(ctx context.Context, phone, code string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPCode, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || !validActor(actor) || !validPurpose(purpose) {
		return models.OTPCode{}, ErrInvalidDataProvided
	}
	if !utils.IsOTPCode(code) {
		return models.OTPCode{}, ErrInvalidOrExpiredOTP
	}

	otp, err := s.otpRepository.ConsumeOTP(ctx, models.OTPLookup{
		Phone:    phone,
		CodeHash: s.hash(code),
		Purpose:  purpose,
		Actor:    actor,
	}, s.now().UTC())
	if errors.Is(err, store.ErrOTPNotFound) {
		return models.OTPCode{}, ErrInvalidOrExpiredOTP
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("otp consumption failed")
		return models.OTPCode{}, fmt.Errorf("otp consumption failed: %w", err)
	}

	return otp, nil
}

// ListOTPs returns the newest codes. limit is clamped to [1, 100]; zero or
// negative selects the default of 10.
func (s *otpService) ListOTPs(ctx context.Context, limit int) (models.OTPList, error) {
	switch {
	case limit <= 0:
		limit = defaultOTPListLimit
	case limit > maxOTPListLimit:
		limit = maxOTPListLimit
	}

	codes, err := s.otpRepository.ListOTPs(ctx, limit)
	if err != nil {
		return models.OTPList{}, fmt.Errorf("listing otps failed: %w", err)
	}

	total, err := s.otpRepository.CountOTPs(ctx)
	if err != nil {
		return models.OTPList{}, fmt.Errorf("counting otps failed: %w", err)
	}

	return models.OTPList{Codes: codes, Limit: limit, Total: total}, nil
}

// ClearExpired deletes every code whose expiry lies in the past, consumed or
// not.
func (s *otpService) ClearExpired(ctx context.Context) (int64, error) {
	deleted, err := s.otpRepository.DeleteExpiredOTPs(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("clearing expired otps failed: %w", err)
	}
	return deleted, nil
}

func (s *otpService) hash(code string) string {
	return utils.HashString(code, s.hashKey)
}

func validActor(actor models.ActorKind) bool {
	_, err := models.ParseActorKind(string(actor))
	return err == nil
}

func validPurpose(purpose models.OTPPurpose) bool {
	return purpose == models.PurposeLogin || purpose == models.PurposeRegister
}

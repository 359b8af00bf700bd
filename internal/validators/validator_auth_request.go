package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/nearmate-api/models"
)

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldMobile   = "mobile"
	FieldUserType = "user_type"
	FieldPurpose  = "purpose"
)

// mobile numbers are 7 to 15 digits, optionally prefixed with '+'
const (
	minMobileDigits = 7
	maxMobileDigits = 15
)

type AuthRequestValidator struct {
}

func NewAuthRequestValidator() Validator {
	return &AuthRequestValidator{}
}

func (v *AuthRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.RequestOTPRequest:
		return v.validateRequestOTPRequest(value, fields...)
	case *models.RequestOTPRequest:
		return v.validateRequestOTPRequest(*value, fields...)

	case models.VerifyOTPRequest:
		return v.validatePhoneAndActor(value.Mobile, value.UserType, fields...)
	case *models.VerifyOTPRequest:
		return v.validatePhoneAndActor(value.Mobile, value.UserType, fields...)

	case models.CheckPhoneRequest:
		return v.validatePhoneAndActor(value.Mobile, value.UserType, fields...)
	case *models.CheckPhoneRequest:
		return v.validatePhoneAndActor(value.Mobile, value.UserType, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthRequestValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isEmail(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthRequestValidator) validateRequestOTPRequest(request models.RequestOTPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMobile, FieldUserType, FieldPurpose}
	}

	for _, f := range fields {
		switch f {
		case FieldPurpose:
			if _, err := models.ParseOTPPurpose(request.Purpose); err != nil {
				return ErrInvalidPurpose
			}
		default:
			if err := v.validatePhoneAndActor(request.Mobile, request.UserType, f); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *AuthRequestValidator) validatePhoneAndActor(mobile, userType string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMobile, FieldUserType}
	}

	for _, f := range fields {
		switch f {
		case FieldMobile:
			if !isMobile(mobile) {
				return ErrInvalidMobile
			}
		case FieldUserType:
			if _, err := models.ParseActorKind(userType); err != nil {
				return ErrInvalidUserType
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func isMobile(mobile string) bool {
	digits := strings.TrimPrefix(strings.TrimSpace(mobile), "+")
	if len(digits) < minMobileDigits || len(digits) > maxMobileDigits {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

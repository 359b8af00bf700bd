package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/nearmate-api/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthRequestValidator_LoginRequest(t *testing.T) {
	v := NewAuthRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr error
	}{
		{"valid", models.LoginRequest{Email: "admin@nearmate.local", Password: "admin123"}, nil},
		{"surrounding spaces", models.LoginRequest{Email: " admin@nearmate.local ", Password: "x"}, nil},
		{"empty email", models.LoginRequest{Password: "x"}, ErrInvalidEmail},
		{"no at sign", models.LoginRequest{Email: "admin", Password: "x"}, ErrInvalidEmail},
		{"at sign last", models.LoginRequest{Email: "admin@", Password: "x"}, ErrInvalidEmail},
		{"empty password", models.LoginRequest{Email: "a@b.c"}, ErrEmptyPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			// pointer form behaves the same
			req := tt.req
			assert.ErrorIs(t, v.Validate(ctx, &req), tt.wantErr)
		})
	}
}

func TestAuthRequestValidator_RequestOTPRequest(t *testing.T) {
	v := NewAuthRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.RequestOTPRequest
		wantErr error
	}{
		{"default purpose", models.RequestOTPRequest{Mobile: "9990001111", UserType: "partner"}, nil},
		{"register", models.RequestOTPRequest{Mobile: "+919990001111", UserType: "end-user", Purpose: "register"}, nil},
		{"empty mobile", models.RequestOTPRequest{UserType: "partner"}, ErrInvalidMobile},
		{"letters in mobile", models.RequestOTPRequest{Mobile: "99900O1111", UserType: "partner"}, ErrInvalidMobile},
		{"too short", models.RequestOTPRequest{Mobile: "12345", UserType: "partner"}, ErrInvalidMobile},
		{"too long", models.RequestOTPRequest{Mobile: "1234567890123456", UserType: "partner"}, ErrInvalidMobile},
		{"admin user type", models.RequestOTPRequest{Mobile: "9990001111", UserType: "admin"}, ErrInvalidUserType},
		{"unknown purpose", models.RequestOTPRequest{Mobile: "9990001111", UserType: "partner", Purpose: "reset"}, ErrInvalidPurpose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthRequestValidator_PhoneRequests(t *testing.T) {
	v := NewAuthRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.VerifyOTPRequest{Mobile: "9990001111", OTP: "123456", UserType: "end-user"}))
	assert.NoError(t, v.Validate(ctx, &models.CheckPhoneRequest{Mobile: "9990001111", UserType: "partner"}))

	assert.ErrorIs(t, v.Validate(ctx, models.VerifyOTPRequest{Mobile: "abc", UserType: "end-user"}), ErrInvalidMobile)
	assert.ErrorIs(t, v.Validate(ctx, models.CheckPhoneRequest{Mobile: "9990001111", UserType: "robot"}), ErrInvalidUserType)
}

func TestAuthRequestValidator_FieldScoping(t *testing.T) {
	v := NewAuthRequestValidator()
	ctx := context.Background()
	req := models.RequestOTPRequest{Mobile: "", UserType: "partner"}

	assert.NoError(t, v.Validate(ctx, req, FieldUserType, FieldPurpose))
	assert.ErrorIs(t, v.Validate(ctx, req, FieldMobile), ErrInvalidMobile)
	assert.ErrorIs(t, v.Validate(ctx, req, FieldPassword), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{}, FieldMobile), ErrUnknownField)
}

func TestAuthRequestValidator_UnsupportedType(t *testing.T) {
	v := NewAuthRequestValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), "not a request"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), models.OTPCode{}), ErrUnsupportedType)
}

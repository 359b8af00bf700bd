// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/MKhiriev/nearmate-api/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Each mock implements a service interface through overridable function
// fields. Calling a method whose field is nil fails the test with a panic.

type mockAuthService struct {
	loginFn func(ctx context.Context, email, password string) (models.User, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

type mockTokenService struct {
	issueTokensFn func(ctx context.Context, subjectID, role string) (models.TokenPair, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Claims, error)
}

func (m *mockTokenService) IssueTokens(ctx context.Context, subjectID, role string) (models.TokenPair, error) {
	return m.issueTokensFn(ctx, subjectID, role)
}

func (m *mockTokenService) ParseToken(ctx context.Context, tokenString string) (models.Claims, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockTokenService) CheckKeys(context.Context) error {
	return nil
}

type mockOTPService struct {
	requestOTPFn   func(ctx context.Context, phone string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPRequestResult, error)
	verifyOTPFn    func(ctx context.Context, phone, code string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPCode, error)
	listOTPsFn     func(ctx context.Context, limit int) (models.OTPList, error)
	clearExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockOTPService) RequestOTP(ctx context.Context, phone string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPRequestResult, error) {
	return m.requestOTPFn(ctx, phone, actor, purpose)
}

func (m *mockOTPService) VerifyOTP(ctx context.Context, phone, code string, actor models.ActorKind, purpose models.OTPPurpose) (models.OTPCode, error) {
	return m.verifyOTPFn(ctx, phone, code, actor, purpose)
}

func (m *mockOTPService) ListOTPs(ctx context.Context, limit int) (models.OTPList, error) {
	return m.listOTPsFn(ctx, limit)
}

func (m *mockOTPService) ClearExpired(ctx context.Context) (int64, error) {
	return m.clearExpiredFn(ctx)
}

type mockAccountService struct {
	findExistingFn func(ctx context.Context, phone string, actor models.ActorKind) (models.Account, error)
	findOrCreateFn func(ctx context.Context, phone string, actor models.ActorKind, data *models.RegistrationData) (models.Account, bool, error)
	checkPhoneFn   func(ctx context.Context, phone string, actor models.ActorKind) (models.CheckPhoneResponse, error)
}

func (m *mockAccountService) FindExisting(ctx context.Context, phone string, actor models.ActorKind) (models.Account, error) {
	return m.findExistingFn(ctx, phone, actor)
}

func (m *mockAccountService) FindOrCreate(ctx context.Context, phone string, actor models.ActorKind, data *models.RegistrationData) (models.Account, bool, error) {
	return m.findOrCreateFn(ctx, phone, actor, data)
}

func (m *mockAccountService) CheckPhoneRegistration(ctx context.Context, phone string, actor models.ActorKind) (models.CheckPhoneResponse, error) {
	return m.checkPhoneFn(ctx, phone, actor)
}

func (m *mockAccountService) BackfillLoginIDs(context.Context) (int, error) {
	return 0, nil
}

func (m *mockAccountService) BootstrapAdmin(context.Context, string, string) (models.User, bool, error) {
	return models.User{}, false, nil
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// stubTokens issues "access-<sub>"/"refresh-<sub>" and accepts the token
// "admin-token" as an admin and "partner-token" as a partner.
func stubTokens() *mockTokenService {
	return &mockTokenService{
		issueTokensFn: func(_ context.Context, subjectID, _ string) (models.TokenPair, error) {
			return models.TokenPair{AccessToken: "access-" + subjectID, RefreshToken: "refresh-" + subjectID}, nil
		},
		parseTokenFn: func(_ context.Context, token string) (models.Claims, error) {
			claims := models.Claims{}
			switch token {
			case "admin-token":
				claims.Subject, claims.Role = "admin-1", "admin"
			case "partner-token":
				claims.Subject, claims.Role = "partner-1", "partner"
			default:
				return models.Claims{}, service.ErrTokenIsExpiredOrInvalid
			}
			return claims, nil
		},
	}
}

func newTestServices() *service.Services {
	return &service.Services{
		AuthService:    &mockAuthService{},
		TokenService:   stubTokens(),
		OTPService:     &mockOTPService{},
		AccountService: &mockAccountService{},
		AppInfoService: &mockAppInfoService{version: "test-version"},
	}
}

func newTestRouter(svcs *service.Services) http.Handler {
	return NewHandler(svcs, 0, logger.Nop()).Init()
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

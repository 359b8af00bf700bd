package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/nearmate-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{
			name:     "token pair",
			data:     models.TokenPair{AccessToken: "a", RefreshToken: "r"},
			status:   http.StatusOK,
			wantBody: `{"accessToken":"a","refreshToken":"r"}`,
		},
		{
			name:     "created status kept",
			data:     map[string]bool{"isRegistered": true},
			status:   http.StatusCreated,
			wantBody: `{"isRegistered":true}`,
		},
		{
			name:     "nil value",
			data:     nil,
			status:   http.StatusOK,
			wantBody: `null`,
		},
		{
			name:     "empty list",
			data:     []models.OTPCode{},
			status:   http.StatusOK,
			wantBody: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chan int")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"statusCode":500,"message":"response encoding failed"}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, "Invalid credentials", http.StatusUnauthorized)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"statusCode":401,"message":"Invalid credentials"}`, w.Body.String())
}

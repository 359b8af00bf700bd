package handler

import (
	"testing"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Server
		wantHTTP bool
		wantGRPC bool
	}{
		{"both transports", config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}, true, true},
		{"http only", config.Server{HTTPAddress: ":8080", RequestTimeout: 5 * time.Second}, true, false},
		{"grpc health only", config.Server{GRPCAddress: ":9090"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(&service.Services{}, nil, tt.cfg, logger.Nop())

			require.NoError(t, err)
			require.NotNil(t, h)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil, "http handler")
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil, "grpc handler")
		})
	}
}

func TestNewHandlers_NoAddresses(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_HTTPRouterBuilds(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, nil, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, h.HTTP.Init())
}

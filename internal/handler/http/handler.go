package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/MKhiriev/nearmate-api/internal/validators"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

type Handler struct {
	services  *service.Services
	validator validators.Validator

	// requestTimeout is applied to every request by chi's Timeout middleware.
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		validator:      validators.NewAuthRequestValidator(),
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// decodeRequest reads a JSON body into dst and validates it. Both failures
// are reported as bad input.
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if err := h.validator.Validate(r.Context(), dst); err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
	}
	return nil
}

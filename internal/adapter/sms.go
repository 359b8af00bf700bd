package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/models"
)

// smsRequest is the body accepted by the SMS gateway's OTP route.
type smsRequest struct {
	Route     string `json:"route"`
	Numbers   string `json:"numbers"`
	Variables string `json:"variables"`
	Sender    string `json:"sender,omitempty"`
}

type smsSender struct {
	client *utils.HTTPClient

	apiKey string
	sender string

	logger *logger.Logger
}

// NewSMSSender constructs an [OTPSender] that posts codes to an HTTP SMS
// gateway. The base URL is normalised and validated up front.
func NewSMSSender(cfg config.SMS, logger *logger.Logger) (OTPSender, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid sms gateway address: %w", err)
	}

	return &smsSender{
		client: utils.NewHTTPClient(baseURL, cfg.Timeout),
		apiKey: cfg.APIKey,
		sender: cfg.Sender,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SendOTP implements [OTPSender]. It POSTs the code to the gateway base URL;
// any transport failure or non-2xx answer is wrapped in [ErrDeliveryFailed].
func (s *smsSender) SendOTP(ctx context.Context, msg models.OTPMessage) error {
	req := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(smsRequest{
			Route:     "otp",
			Numbers:   msg.Phone,
			Variables: msg.Code,
			Sender:    s.sender,
		})
	if s.apiKey != "" {
		req.SetHeader("Authorization", s.apiKey)
	}

	resp, err := req.Post("")
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*smsSender.SendOTP").Msg("sms gateway request failed")
		return fmt.Errorf("%w: sms request: %w", ErrDeliveryFailed, err)
	}
	if err = gatewayError(resp); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*smsSender.SendOTP").Int("status", resp.StatusCode()).Msg("sms gateway rejected message")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	return nil
}

func (s *smsSender) Close() error {
	return nil
}

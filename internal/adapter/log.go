package adapter

import (
	"context"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/models"
)

// logSender is the development channel: it records that a code was issued
// and drops it. Pair it with AUTH_EXPOSE_OTP to see codes locally.
type logSender struct {
	logger *logger.Logger
}

func NewLogSender(logger *logger.Logger) OTPSender {
	return &logSender{logger: logger}
}

func (l *logSender) SendOTP(ctx context.Context, msg models.OTPMessage) error {
	logger.FromContext(ctx).Info().
		Str("phone", maskPhone(msg.Phone)).
		Str("purpose", string(msg.Purpose)).
		Str("user_type", msg.Actor.String()).
		Time("expires_at", msg.ExpiresAt).
		Msg("one-time code issued (log delivery)")
	return nil
}

func (l *logSender) Close() error {
	return nil
}

// maskPhone keeps the last four digits.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	masked := make([]byte, len(phone))
	for i := range masked {
		if i < len(phone)-4 {
			masked[i] = '*'
		} else {
			masked[i] = phone[i]
		}
	}
	return string(masked)
}

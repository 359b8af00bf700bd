package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/logger"
)

// OTPSweeper periodically deletes expired one-time codes.
type OTPSweeper struct {
	cleaner  ExpiredOTPCleaner
	interval time.Duration
	logger   *logger.Logger
}

func NewOTPSweeper(cleaner ExpiredOTPCleaner, interval time.Duration, logger *logger.Logger) *OTPSweeper {
	return &OTPSweeper{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger.WithField("worker", "otp-sweeper"),
	}
}

func (s *OTPSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("otp sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("otp sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *OTPSweeper) sweep(ctx context.Context) {
	deleted, err := s.cleaner.ClearExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Msg("expired otp sweep failed")
		}
		return
	}
	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("expired otps removed")
	}
}

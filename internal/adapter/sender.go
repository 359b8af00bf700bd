package adapter

import (
	"fmt"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
)

// NewOTPSender builds the delivery channel named by cfg.OTPDelivery.
func NewOTPSender(cfg config.Adapter, logger *logger.Logger) (OTPSender, error) {
	switch cfg.OTPDelivery {
	case config.DeliveryLog, "":
		return NewLogSender(logger), nil
	case config.DeliverySMS:
		return NewSMSSender(cfg.SMS, logger)
	case config.DeliveryKafka:
		return NewKafkaSender(cfg.Kafka, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDelivery, cfg.OTPDelivery)
	}
}

package adapter

import "errors"

var (
	// ErrDeliveryFailed wraps every failure of a delivery channel.
	ErrDeliveryFailed = errors.New("otp delivery failed")

	// ErrUnknownDelivery is returned for an unrecognised delivery channel name.
	ErrUnknownDelivery = errors.New("unknown otp delivery channel")

	ErrGatewayAuth        = errors.New("sms gateway rejected credentials")
	ErrGatewayThrottled   = errors.New("sms gateway rate limit exceeded")
	ErrGatewayRejected    = errors.New("sms gateway rejected message")
	ErrGatewayUnavailable = errors.New("sms gateway unavailable")
)

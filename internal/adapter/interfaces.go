// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound channels one-time codes leave the
// service through.
//
// The primary abstraction is [OTPSender], which decouples the OTP service from
// the delivery transport. The package ships an SMS gateway sender over HTTP
// ([NewSMSSender]), a Kafka publisher ([NewKafkaSender]) and a development
// sender that only logs the attempt ([NewLogSender]). [NewOTPSender] picks
// one from configuration.
//
// SMS gateway answers are classified into the ErrGateway* values, always
// wrapped in [ErrDeliveryFailed].
package adapter

import (
	"context"

	"github.com/MKhiriev/nearmate-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/otp_sender_mock.go -package=mock

// OTPSender delivers a freshly generated one-time code to its owner.
type OTPSender interface {
	// SendOTP hands msg to the delivery channel. Implementations must not
	// log msg.Code.
	SendOTP(ctx context.Context, msg models.OTPMessage) error

	// Close releases connections held by the sender.
	Close() error
}

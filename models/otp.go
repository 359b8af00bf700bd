package models

import (
	"fmt"
	"time"
)

// OTPPurpose scopes which flow may consume a one-time code.
type OTPPurpose string

const (
	PurposeLogin    OTPPurpose = "login"
	PurposeRegister OTPPurpose = "register"
)

// ParseOTPPurpose validates a purpose value; empty means login.
func ParseOTPPurpose(s string) (OTPPurpose, error) {
	switch p := OTPPurpose(s); p {
	case "":
		return PurposeLogin, nil
	case PurposeLogin, PurposeRegister:
		return p, nil
	default:
		return "", fmt.Errorf("unknown otp purpose %q", s)
	}
}

// OTPStatus is the derived lifecycle state of a one-time code.
type OTPStatus string

const (
	OTPPending  OTPStatus = "pending"
	OTPConsumed OTPStatus = "consumed"
	OTPExpired  OTPStatus = "expired"
)

// OTPCode is a single authentication challenge sent to a phone number.
// The code itself is never stored, only its keyed hash.
type OTPCode struct {
	ID        string     `json:"id"`
	Phone     string     `json:"phone"`
	CodeHash  string     `json:"-"`
	Purpose   OTPPurpose `json:"purpose"`
	Actor     ActorKind  `json:"userType"`
	Used      bool       `json:"isUsed"`
	ExpiresAt time.Time  `json:"expiresAt"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the OTPCode model.
func (o OTPCode) TableName() string {
	return "otp_codes"
}

// Status reports the lifecycle state of the code at the given instant.
// Consumed wins over Expired: a used code stays consumed forever.
func (o OTPCode) Status(now time.Time) OTPStatus {
	switch {
	case o.Used:
		return OTPConsumed
	case !now.Before(o.ExpiresAt):
		return OTPExpired
	default:
		return OTPPending
	}
}

// OTPLookup identifies the code a verification attempt targets.
type OTPLookup struct {
	Phone    string
	CodeHash string
	Purpose  OTPPurpose
	Actor    ActorKind
}

// OTPRequestResult is returned after a code has been generated and handed
// to the delivery channel.
type OTPRequestResult struct {
	OTPID     string
	Phone     string
	Actor     ActorKind
	ExpiresIn time.Duration
	// Code is set only when the service runs with code exposure enabled.
	Code string
}

// OTPList is one page of the administrative code listing.
type OTPList struct {
	Codes []OTPCode
	Limit int
	Total int64
}

// OTPMessage is what a delivery channel needs to hand a code to its owner.
type OTPMessage struct {
	Phone     string     `json:"phone"`
	Code      string     `json:"code"`
	Purpose   OTPPurpose `json:"purpose"`
	Actor     ActorKind  `json:"userType"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

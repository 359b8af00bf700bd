package models

import (
	"fmt"
	"time"
)

// ActorKind tells which class of account a one-time code or a phone lookup
// applies to.
type ActorKind string

const (
	ActorEndUser ActorKind = "end-user"
	ActorPartner ActorKind = "partner"
)

// ParseActorKind validates a userType value coming from a request body.
func ParseActorKind(s string) (ActorKind, error) {
	switch k := ActorKind(s); k {
	case ActorEndUser, ActorPartner:
		return k, nil
	default:
		return "", fmt.Errorf("unknown user type %q", s)
	}
}

// String implements fmt.Stringer.
func (k ActorKind) String() string {
	return string(k)
}

// Account statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Partner defaults applied on self-registration.
const (
	DefaultServiceRadiusKm = 5
	DefaultPricingType     = "hourly"
	DefaultPlan            = "Basic"
)

// Account is an end user or a partner reachable by phone number. Partner-only
// fields are left zero for end users and vice versa.
type Account struct {
	ID        string    `json:"id"`
	Type      ActorKind `json:"type"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`

	// end user
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `json:"gender,omitempty"`

	// partner
	LoginID         string `json:"loginId,omitempty"`
	ServiceRadiusKm int    `json:"serviceRadiusKm,omitempty"`
	PricingType     string `json:"pricingType,omitempty"`
	Plan            string `json:"plan,omitempty"`
	IsAvailable     *bool  `json:"isAvailable,omitempty"`
}

// Role is the token role of an account authenticated by one-time code.
func (a Account) Role() string {
	return string(a.Type)
}

// RegistrationData carries the profile fields supplied together with a
// verify-otp-register call.
type RegistrationData struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`

	ServiceRadiusKm int    `json:"serviceRadiusKm,omitempty"`
	PricingType     string `json:"pricingType,omitempty"`
	Plan            string `json:"plan,omitempty"`
	IsAvailable     *bool  `json:"isAvailable,omitempty"`
}

// NewAccount builds an account of the given kind from registration data,
// applying the defaults new accounts start with.
func (d RegistrationData) NewAccount(kind ActorKind, phone string) (Account, error) {
	acc := Account{
		Type:   kind,
		Name:   d.Name,
		Email:  d.Email,
		Phone:  phone,
		Status: StatusActive,
	}

	switch kind {
	case ActorEndUser:
		acc.Gender = d.Gender
		if d.DateOfBirth != "" {
			dob, err := time.Parse(time.DateOnly, d.DateOfBirth)
			if err != nil {
				return Account{}, fmt.Errorf("invalid date of birth %q: %w", d.DateOfBirth, err)
			}
			acc.DateOfBirth = &dob
		}
	case ActorPartner:
		acc.ServiceRadiusKm = d.ServiceRadiusKm
		if acc.ServiceRadiusKm == 0 {
			acc.ServiceRadiusKm = DefaultServiceRadiusKm
		}
		acc.PricingType = d.PricingType
		if acc.PricingType == "" {
			acc.PricingType = DefaultPricingType
		}
		acc.Plan = d.Plan
		if acc.Plan == "" {
			acc.Plan = DefaultPlan
		}
		available := true
		if d.IsAvailable != nil {
			available = *d.IsAvailable
		}
		acc.IsAvailable = &available
	}

	return acc, nil
}

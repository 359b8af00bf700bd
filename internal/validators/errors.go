package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail    = errors.New("invalid email")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidMobile   = errors.New("invalid mobile number")
	ErrInvalidUserType = errors.New("invalid user type")
	ErrInvalidPurpose  = errors.New("invalid purpose")
)

package models

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RequestOTPRequest is the body of POST /api/v1/auth/request-otp.
type RequestOTPRequest struct {
	// Mobile is the phone number the code is delivered to.
	Mobile string `json:"mobile"`

	// UserType is "end-user" or "partner".
	UserType string `json:"userType"`

	// Purpose is "login" (default) or "register".
	Purpose string `json:"purpose,omitempty"`
}

// VerifyOTPRequest is the body of both verify-otp endpoints. UserData is
// consulted only by verify-otp-register.
type VerifyOTPRequest struct {
	Mobile   string            `json:"mobile"`
	OTP      string            `json:"otp"`
	UserType string            `json:"userType"`
	UserData *RegistrationData `json:"userData,omitempty"`
}

// CheckPhoneRequest is the body of POST /api/v1/auth/check-phone.
type CheckPhoneRequest struct {
	Mobile   string `json:"mobile"`
	UserType string `json:"userType"`
}

package models

// LoginResponse is returned by a successful password login.
type LoginResponse struct {
	User UserIdentity `json:"user"`
	TokenPair
}

// AccountAuthResponse is returned by both verify-otp endpoints.
type AccountAuthResponse struct {
	User Account `json:"user"`
	TokenPair
	Message string `json:"message"`
}

// OTPRequestResponse acknowledges a generated code. OTP is populated only
// in development deployments that expose codes.
type OTPRequestResponse struct {
	Message   string `json:"message"`
	Mobile    string `json:"mobile"`
	UserType  string `json:"userType"`
	ExpiresIn int64  `json:"expiresIn"`
	OTPID     string `json:"otpId"`
	OTP       string `json:"otp,omitempty"`
}

// OTPListResponse is the administrative code listing.
type OTPListResponse struct {
	OTPs       []OTPView  `json:"otps"`
	Pagination Pagination `json:"pagination"`
}

// OTPView is a listed code without its hash, with its derived status.
type OTPView struct {
	OTPCode
	Status OTPStatus `json:"status"`
}

// Pagination describes a page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ClearExpiredResponse reports the outcome of an expired-code sweep.
type ClearExpiredResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// CheckPhoneResponse tells whether a phone number already belongs to an
// account of the requested kind.
type CheckPhoneResponse struct {
	IsRegistered bool     `json:"isRegistered"`
	ExistingUser *Account `json:"existingUser,omitempty"`
	Message      string   `json:"message"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

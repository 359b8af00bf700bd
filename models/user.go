package models

import "time"

// User is an administrator account of the back-office. It is the only
// account kind that authenticates with an email and a password.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUID).
	UserID string `json:"id"`

	// Email is the unique login identifier.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Role is embedded into issued tokens ("admin", "operator", ...).
	Role string `json:"role"`

	// Status is "active" or "inactive".
	Status string `json:"status,omitempty"`

	// HashedPassword is the bcrypt hash of the password. Never serialized.
	HashedPassword string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Identity returns the public projection of the user returned by login.
func (u User) Identity() UserIdentity {
	return UserIdentity{
		ID:    u.UserID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// UserIdentity is the subset of [User] safe to hand out to clients.
type UserIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

package domain

import "errors"

var (
	ErrNoPendingRegistration = errors.New("no pending registration for this email")
	ErrEmailNotRegistered    = errors.New("email is not registered")
)

// PendingUser is a candidate account held until its registration code is confirmed.
type PendingUser struct {
	FirstName           string
	LastName            string
	Email               string
	PasswordHash        string
	ConfirmPasswordHash string
	Role                Role
}

// ResetRequest is the payload of an active password-reset code.
type ResetRequest struct {
	UserID uint
}

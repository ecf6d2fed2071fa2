package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in PasswordHash.
//
// Each OTP slot holds at most one live code: either the code is empty, or it
// is set together with its expiry. Both fields are cleared together on
// consumption or expiry.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	IsVerified   bool

	VerifyOTP          string
	VerifyOTPExpiresAt time.Time
	ResetOTP           string
	ResetOTPExpiresAt  time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

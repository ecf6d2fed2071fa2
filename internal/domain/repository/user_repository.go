package repository

import (
	"context"
	"errors"
	"time"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the email unique index rejects an insert.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the credential-store operations. OTP writes are
// single-row conditional updates so that concurrent issue/redeem calls for
// the same user cannot interleave into a mixed state.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// SetVerifyOTP stores a fresh verification code and expiry, overwriting
	// any previous un-consumed code.
	SetVerifyOTP(ctx context.Context, userID, code string, expiresAt time.Time) error
	// ClearVerifyOTP empties the verification slot (expired codes must never
	// remain redeemable).
	ClearVerifyOTP(ctx context.Context, userID string) error
	// ConsumeVerifyOTP atomically clears the slot and marks the user verified
	// iff the stored code matches exactly. Returns false when the code does
	// not match or was already consumed.
	ConsumeVerifyOTP(ctx context.Context, userID, code string) (bool, error)

	SetResetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error
	ClearResetOTP(ctx context.Context, userID string) error
	// ConsumeResetOTP atomically replaces the password hash and clears the
	// reset slot iff the stored code matches exactly.
	ConsumeResetOTP(ctx context.Context, userID, code, newPasswordHash string) (bool, error)
}

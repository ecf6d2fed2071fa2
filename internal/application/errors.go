package application

import "errors"

// Sentinel errors returned by the application services. Handlers translate
// these into stable response messages; anything else is reported as a
// generic infrastructure failure.
var (
	ErrEmailTaken      = errors.New("user already exists")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")

	ErrAlreadyVerified = errors.New("account already verified")
	ErrInvalidCode     = errors.New("invalid otp")
	ErrCodeExpired     = errors.New("otp expired")

	ErrInviteNotFound = errors.New("invalid invite code")
	ErrSelfJoin       = errors.New("cannot join own classroom")
	ErrAlreadyMember  = errors.New("already joined this classroom")

	// Existence and authorization failures are deliberately merged so the
	// caller cannot probe which classrooms or records exist.
	ErrClassroomAccess    = errors.New("classroom not found or access denied")
	ErrAnnouncementAccess = errors.New("announcement not found or access denied")
)

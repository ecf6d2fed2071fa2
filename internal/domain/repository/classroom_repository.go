package repository

import (
	"context"
	"errors"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
)

var (
	// ErrDuplicateInviteCode is returned when the invite-code unique index
	// rejects an insert; callers regenerate and retry.
	ErrDuplicateInviteCode = errors.New("invite code already exists")
	// ErrDuplicateMember is returned when the user is already enrolled.
	ErrDuplicateMember = errors.New("already a member")
)

// ClassroomRepository stores classrooms and their memberships. Memberships
// live in a join table, so enrolling is one constrained insert and the
// delete cascade runs inside a single transaction.
type ClassroomRepository interface {
	Create(ctx context.Context, c *entity.Classroom) error
	GetByID(ctx context.Context, id string) (*entity.Classroom, error)
	GetByInviteCode(ctx context.Context, code string) (*entity.Classroom, error)

	AddMember(ctx context.Context, classroomID, userID string) error
	IsMember(ctx context.Context, classroomID, userID string) (bool, error)
	ListMembers(ctx context.Context, classroomID string) ([]entity.Member, error)
	ListForUser(ctx context.Context, userID string) ([]entity.Classroom, error)

	// Delete removes the classroom owned by teacherID: memberships first,
	// then the classroom row, in one transaction. ErrNotFound when the
	// classroom does not exist or the caller is not its teacher.
	Delete(ctx context.Context, classroomID, teacherID string) error
}

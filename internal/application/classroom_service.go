package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
	"github.com/classtalk/classtalk-api/pkg/helpers"
)

// inviteAttempts bounds regeneration on invite-code collisions. Collisions
// are retried internally, never surfaced to the caller.
const inviteAttempts = 5

// ClassroomService is the membership controller: it creates classrooms,
// enrolls students by invite code and resolves the caller's role, which is
// the single authorization primitive for all content operations.
type ClassroomService struct {
	Classrooms repository.ClassroomRepository
	Logger     *logrus.Logger
}

func NewClassroomService(classrooms repository.ClassroomRepository, logger *logrus.Logger) *ClassroomService {
	return &ClassroomService{Classrooms: classrooms, Logger: logger}
}

// ClassroomSummary annotates a classroom with the caller's relation to it.
type ClassroomSummary struct {
	Classroom entity.Classroom
	IsTeacher bool
}

// MemberView is a classroom member annotated for a particular caller.
type MemberView struct {
	entity.Member
	IsCurrentUser bool
}

// ClassroomDetail is the role-aware detail projection.
type ClassroomDetail struct {
	Classroom entity.Classroom
	Role      entity.Role
	Members   []MemberView
}

// Create generates a globally unique invite code; the unique index is the
// authority and generation retries on collision.
func (s *ClassroomService) Create(ctx context.Context, teacherID, name, description string) (*entity.Classroom, error) {
	var lastErr error
	for i := 0; i < inviteAttempts; i++ {
		code, err := helpers.GenInviteCode()
		if err != nil {
			return nil, err
		}
		c := &entity.Classroom{Name: name, Description: description, TeacherID: teacherID, InviteCode: code}
		err = s.Classrooms.Create(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrDuplicateInviteCode) {
			return nil, err
		}
		lastErr = err
		if s.Logger != nil {
			s.Logger.WithField("invite_code", code).Debug("invite code collision, regenerating")
		}
	}
	return nil, lastErr
}

// Join enrolls the caller by exact invite-code match. The membership row is
// the single system of record for both the classroom's student set and the
// user's membership set, so there is no partial state to reconcile.
func (s *ClassroomService) Join(ctx context.Context, userID, code string) (*entity.Classroom, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, err := s.Classrooms.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	if c.TeacherID == userID {
		return nil, ErrSelfJoin
	}
	if err := s.Classrooms.AddMember(ctx, c.ID, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return c, nil
}

// ListForUser returns every classroom the user belongs to, flagging the ones
// they teach.
func (s *ClassroomService) ListForUser(ctx context.Context, userID string) ([]ClassroomSummary, error) {
	classrooms, err := s.Classrooms.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]ClassroomSummary, 0, len(classrooms))
	for _, c := range classrooms {
		out = append(out, ClassroomSummary{Classroom: c, IsTeacher: c.TeacherID == userID})
	}
	return out, nil
}

// Details returns the classroom with its merged member list. Non-members get
// the merged not-found/access-denied failure.
func (s *ClassroomService) Details(ctx context.Context, classroomID, userID string) (*ClassroomDetail, error) {
	role, c, err := s.RoleIn(ctx, classroomID, userID)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleNone {
		return nil, ErrClassroomAccess
	}
	members, err := s.Classrooms.ListMembers(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, MemberView{Member: m, IsCurrentUser: m.UserID == userID})
	}
	return &ClassroomDetail{Classroom: *c, Role: role, Members: views}, nil
}

// Delete removes the classroom and all membership references. The repository
// runs the cascade in one transaction, cleanup before the classroom row, so
// a retried delete converges to the same end state.
func (s *ClassroomService) Delete(ctx context.Context, classroomID, userID string) error {
	err := s.Classrooms.Delete(ctx, classroomID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassroomAccess
	}
	return err
}

// RoleIn resolves the caller's role within a classroom, re-reading current
// membership state. RoleNone means not a member; unknown classrooms surface
// the merged access failure.
func (s *ClassroomService) RoleIn(ctx context.Context, classroomID, userID string) (entity.Role, *entity.Classroom, error) {
	c, err := s.Classrooms.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.RoleNone, nil, ErrClassroomAccess
		}
		return entity.RoleNone, nil, err
	}
	if c.TeacherID == userID {
		return entity.RoleTeacher, c, nil
	}
	member, err := s.Classrooms.IsMember(ctx, classroomID, userID)
	if err != nil {
		return entity.RoleNone, nil, err
	}
	if member {
		return entity.RoleStudent, c, nil
	}
	return entity.RoleNone, c, nil
}

package application

import (
	"context"
	"errors"
	"testing"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
)

func newClassroomFixture(t *testing.T) (*AuthService, *ClassroomService, *entity.User, *entity.User) {
	t.Helper()
	users := newFakeUserRepo()
	auth := newAuthService(users)
	classrooms := NewClassroomService(newFakeClassroomRepo(users), nil)

	teacher, _, _, err := auth.Register(context.Background(), "Teacher", "teacher@example.com", "password123", entity.RoleTeacher)
	if err != nil {
		t.Fatalf("register teacher: %v", err)
	}
	student, _, _, err := auth.Register(context.Background(), "Student", "student@example.com", "password123", entity.RoleStudent)
	if err != nil {
		t.Fatalf("register student: %v", err)
	}
	return auth, classrooms, teacher, student
}

func TestCreateClassroomGeneratesInviteCode(t *testing.T) {
	_, svc, teacher, _ := newClassroomFixture(t)

	c, err := svc.Create(context.Background(), teacher.ID, "Algebra", "first period")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.TeacherID != teacher.ID {
		t.Fatalf("teacher id %q, want %q", c.TeacherID, teacher.ID)
	}
	if len(c.InviteCode) != 8 {
		t.Fatalf("invite code %q, want 8 characters", c.InviteCode)
	}

	// Codes are unique across classrooms.
	c2, err := svc.Create(context.Background(), teacher.ID, "Geometry", "")
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if c.InviteCode == c2.InviteCode {
		t.Fatal("two classrooms share an invite code")
	}
}

func TestJoinClassroom(t *testing.T) {
	_, svc, teacher, student := newClassroomFixture(t)
	c, err := svc.Create(context.Background(), teacher.ID, "Algebra", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	joined, err := svc.Join(context.Background(), student.ID, c.InviteCode)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if joined.ID != c.ID {
		t.Fatalf("joined %q, want %q", joined.ID, c.ID)
	}

	if _, err := svc.Join(context.Background(), student.ID, c.InviteCode); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("rejoin: got %v, want ErrAlreadyMember", err)
	}
	if _, err := svc.Join(context.Background(), teacher.ID, c.InviteCode); !errors.Is(err, ErrSelfJoin) {
		t.Fatalf("self join: got %v, want ErrSelfJoin", err)
	}
	if _, err := svc.Join(context.Background(), student.ID, "FFFFFFFF"); !errors.Is(err, ErrInviteNotFound) {
		t.Fatalf("unknown code: got %v, want ErrInviteNotFound", err)
	}
}

func TestListForUserFlagsTaughtClassrooms(t *testing.T) {
	_, svc, teacher, student := newClassroomFixture(t)
	c, err := svc.Create(context.Background(), teacher.ID, "Algebra", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Join(context.Background(), student.ID, c.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}

	teacherView, err := svc.ListForUser(context.Background(), teacher.ID)
	if err != nil {
		t.Fatalf("ListForUser teacher: %v", err)
	}
	if len(teacherView) != 1 || !teacherView[0].IsTeacher {
		t.Fatalf("teacher view %+v, want one taught classroom", teacherView)
	}

	studentView, err := svc.ListForUser(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("ListForUser student: %v", err)
	}
	if len(studentView) != 1 || studentView[0].IsTeacher {
		t.Fatalf("student view %+v, want one joined classroom", studentView)
	}

	outsider, err := svc.ListForUser(context.Background(), "user-999")
	if err != nil {
		t.Fatalf("ListForUser outsider: %v", err)
	}
	if len(outsider) != 0 {
		t.Fatalf("outsider sees %d classrooms, want 0", len(outsider))
	}
}

func TestDetailsRequiresMembership(t *testing.T) {
	_, svc, teacher, student := newClassroomFixture(t)
	c, err := svc.Create(context.Background(), teacher.ID, "Algebra", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Outsiders get the merged access failure; so do lookups of unknown ids.
	if _, err := svc.Details(context.Background(), c.ID, student.ID); !errors.Is(err, ErrClassroomAccess) {
		t.Fatalf("outsider: got %v, want ErrClassroomAccess", err)
	}
	if _, err := svc.Details(context.Background(), "classroom-999", teacher.ID); !errors.Is(err, ErrClassroomAccess) {
		t.Fatalf("unknown id: got %v, want ErrClassroomAccess", err)
	}

	if _, err := svc.Join(context.Background(), student.ID, c.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}

	detail, err := svc.Details(context.Background(), c.ID, student.ID)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if detail.Role != entity.RoleStudent {
		t.Fatalf("role %q, want student", detail.Role)
	}
	if len(detail.Members) != 2 {
		t.Fatalf("%d members, want 2", len(detail.Members))
	}
	var self, other int
	for _, m := range detail.Members {
		if m.IsCurrentUser {
			self++
			if m.UserID != student.ID {
				t.Fatalf("current-user flag on %q", m.UserID)
			}
		} else {
			other++
		}
	}
	if self != 1 || other != 1 {
		t.Fatalf("self=%d other=%d, want 1 and 1", self, other)
	}

	teacherDetail, err := svc.Details(context.Background(), c.ID, teacher.ID)
	if err != nil {
		t.Fatalf("Details teacher: %v", err)
	}
	if teacherDetail.Role != entity.RoleTeacher {
		t.Fatalf("role %q, want teacher", teacherDetail.Role)
	}
}

func TestDeleteClassroom(t *testing.T) {
	_, svc, teacher, student := newClassroomFixture(t)
	c, err := svc.Create(context.Background(), teacher.ID, "Algebra", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Join(context.Background(), student.ID, c.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}

	// Only the teacher may delete.
	if err := svc.Delete(context.Background(), c.ID, student.ID); !errors.Is(err, ErrClassroomAccess) {
		t.Fatalf("student delete: got %v, want ErrClassroomAccess", err)
	}

	if err := svc.Delete(context.Background(), c.ID, teacher.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Membership references are gone with the classroom.
	list, err := svc.ListForUser(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("student still sees %d classrooms", len(list))
	}

	// A repeated delete converges to the same failure as unknown id.
	if err := svc.Delete(context.Background(), c.ID, teacher.ID); !errors.Is(err, ErrClassroomAccess) {
		t.Fatalf("second delete: got %v, want ErrClassroomAccess", err)
	}
}

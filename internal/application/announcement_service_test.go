package application

import (
	"context"
	"errors"
	"testing"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
)

func newAnnouncementFixture(t *testing.T) (*AnnouncementService, *ClassroomService, *entity.User, *entity.User, *entity.Classroom) {
	t.Helper()
	_, classrooms, teacher, student := newClassroomFixture(t)
	c, err := classrooms.Create(context.Background(), teacher.ID, "Algebra", "")
	if err != nil {
		t.Fatalf("Create classroom: %v", err)
	}
	if _, err := classrooms.Join(context.Background(), student.ID, c.InviteCode); err != nil {
		t.Fatalf("Join: %v", err)
	}
	svc := NewAnnouncementService(newFakeAnnouncementRepo(), classrooms)
	return svc, classrooms, teacher, student, c
}

func TestPostAnnouncementTeacherOnly(t *testing.T) {
	svc, _, teacher, student, c := newAnnouncementFixture(t)

	if _, err := svc.Post(context.Background(), student.ID, c.ID, "Exam", "Friday"); !errors.Is(err, ErrClassroomAccess) {
		t.Fatalf("student post: got %v, want ErrClassroomAccess", err)
	}

	a, err := svc.Post(context.Background(), teacher.ID, c.ID, "Exam", "Friday")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if a.AuthorID != teacher.ID || a.ClassroomID != c.ID {
		t.Fatalf("announcement %+v mis-attributed", a)
	}
}

func TestListAnnouncementsMembersOnly(t *testing.T) {
	svc, _, teacher, student, c := newAnnouncementFixture(t)
	if _, err := svc.Post(context.Background(), teacher.ID, c.ID, "Exam", "Friday"); err != nil {
		t.Fatalf("Post: %v", err)
	}

	items, err := svc.List(context.Background(), student.ID, c.ID)
	if err != nil {
		t.Fatalf("List as student: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("%d announcements, want 1", len(items))
	}

	if _, err := svc.List(context.Background(), "user-999", c.ID); !errors.Is(err, ErrClassroomAccess) {
		t.Fatalf("outsider list: got %v, want ErrClassroomAccess", err)
	}
}

func TestDeleteAnnouncementAuthorOnly(t *testing.T) {
	svc, _, teacher, student, c := newAnnouncementFixture(t)
	a, err := svc.Post(context.Background(), teacher.ID, c.ID, "Exam", "Friday")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	if err := svc.Delete(context.Background(), student.ID, a.ID); !errors.Is(err, ErrAnnouncementAccess) {
		t.Fatalf("non-author delete: got %v, want ErrAnnouncementAccess", err)
	}
	if err := svc.Delete(context.Background(), teacher.ID, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// Gone means gone; a second delete is the same merged failure.
	if err := svc.Delete(context.Background(), teacher.ID, a.ID); !errors.Is(err, ErrAnnouncementAccess) {
		t.Fatalf("second delete: got %v, want ErrAnnouncementAccess", err)
	}
}

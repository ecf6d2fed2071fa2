package application

import (
	"context"
	"errors"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
)

// AnnouncementService gates announcement writes on the caller's classroom
// role, resolved per request by the membership controller.
type AnnouncementService struct {
	Announcements repository.AnnouncementRepository
	Classrooms    *ClassroomService
}

func NewAnnouncementService(announcements repository.AnnouncementRepository, classrooms *ClassroomService) *AnnouncementService {
	return &AnnouncementService{Announcements: announcements, Classrooms: classrooms}
}

// Post creates an announcement; only the classroom's teacher may post.
func (s *AnnouncementService) Post(ctx context.Context, userID, classroomID, title, content string) (*entity.Announcement, error) {
	role, _, err := s.Classrooms.RoleIn(ctx, classroomID, userID)
	if err != nil {
		return nil, err
	}
	if role != entity.RoleTeacher {
		return nil, ErrClassroomAccess
	}
	a := &entity.Announcement{ClassroomID: classroomID, AuthorID: userID, Title: title, Content: content}
	if err := s.Announcements.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns the classroom's announcements, newest first, to any member.
func (s *AnnouncementService) List(ctx context.Context, userID, classroomID string) ([]entity.Announcement, error) {
	role, _, err := s.Classrooms.RoleIn(ctx, classroomID, userID)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleNone {
		return nil, ErrClassroomAccess
	}
	return s.Announcements.ListByClassroom(ctx, classroomID)
}

// Delete removes an announcement; only its author may delete, and the
// failure is merged with not-found.
func (s *AnnouncementService) Delete(ctx context.Context, userID, announcementID string) error {
	err := s.Announcements.Delete(ctx, announcementID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAnnouncementAccess
	}
	return err
}

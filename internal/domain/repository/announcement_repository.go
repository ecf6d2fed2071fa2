package repository

import (
	"context"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
)

// AnnouncementRepository stores classroom announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *entity.Announcement) error
	ListByClassroom(ctx context.Context, classroomID string) ([]entity.Announcement, error)
	// Delete removes the announcement authored by authorID. ErrNotFound when
	// it does not exist or the caller is not its author.
	Delete(ctx context.Context, announcementID, authorID string) error
}

package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
	"github.com/classtalk/classtalk-api/pkg/helpers"
)

// AttachmentUpload is a file received with an assignment.
type AttachmentUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// AssignmentService creates classwork with optional attachments stored in
// object storage.
type AssignmentService struct {
	Assignments repository.AssignmentRepository
	Classrooms  *ClassroomService
	GCS         *storage.Client
	GCSBucket   string
	Logger      *logrus.Logger
}

func NewAssignmentService(assignments repository.AssignmentRepository, classrooms *ClassroomService, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *AssignmentService {
	return &AssignmentService{
		Assignments: assignments,
		Classrooms:  classrooms,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
		Logger:      logger,
	}
}

// Create stores an assignment; only the classroom's teacher may create one.
// Attachments are uploaded before the record is written so the stored URLs
// are always reachable.
func (s *AssignmentService) Create(ctx context.Context, userID, classroomID, title, description string, dueDate *time.Time, files []AttachmentUpload) (*entity.Assignment, error) {
	role, _, err := s.Classrooms.RoleIn(ctx, classroomID, userID)
	if err != nil {
		return nil, err
	}
	if role != entity.RoleTeacher {
		return nil, ErrClassroomAccess
	}

	attachments := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.uploadAttachment(ctx, classroomID, f)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, url)
	}

	a := &entity.Assignment{
		ClassroomID: classroomID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		CreatedBy:   userID,
		Attachments: attachments,
	}
	if err := s.Assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns the classroom's assignments to any member, newest first.
func (s *AssignmentService) List(ctx context.Context, userID, classroomID string) ([]entity.Assignment, error) {
	role, _, err := s.Classrooms.RoleIn(ctx, classroomID, userID)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleNone {
		return nil, ErrClassroomAccess
	}
	return s.Assignments.ListByClassroom(ctx, classroomID)
}

func (s *AssignmentService) uploadAttachment(ctx context.Context, classroomID string, f AttachmentUpload) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(f.Filename))
	objectPath := filepath.ToSlash(filepath.Join("assignments", classroomID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, f.ContentType, f.Reader)
}

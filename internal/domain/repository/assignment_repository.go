package repository

import (
	"context"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
)

// AssignmentRepository stores classwork records.
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.Assignment) error
	ListByClassroom(ctx context.Context, classroomID string) ([]entity.Assignment, error)
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
)

type AssignmentRepository struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

func (r *AssignmentRepository) Create(ctx context.Context, a *entity.Assignment) error {
	if a.Attachments == nil {
		a.Attachments = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO assignments (classroom_id, title, description, due_date, created_by, attachments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, a.ClassroomID, a.Title, a.Description, a.DueDate, a.CreatedBy, a.Attachments)
	return row.Scan(&a.ID, &a.CreatedAt)
}

func (r *AssignmentRepository) ListByClassroom(ctx context.Context, classroomID string) ([]entity.Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, classroom_id, title, description, due_date, created_by, attachments, created_at
		FROM assignments
		WHERE classroom_id = $1
		ORDER BY created_at DESC
	`, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		if err := rows.Scan(&a.ID, &a.ClassroomID, &a.Title, &a.Description, &a.DueDate,
			&a.CreatedBy, &a.Attachments, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.AssignmentRepository = (*AssignmentRepository)(nil)

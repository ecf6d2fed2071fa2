package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
)

type ClassroomRepository struct {
	pool *pgxpool.Pool
}

func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

func (r *ClassroomRepository) Create(ctx context.Context, c *entity.Classroom) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO classrooms (name, description, teacher_id, invite_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.Name, c.Description, c.TeacherID, c.InviteCode)

	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		if uniqueViolation(err, "classrooms_invite_code_key") {
			return repository.ErrDuplicateInviteCode
		}
		return err
	}
	return nil
}

func (r *ClassroomRepository) GetByID(ctx context.Context, id string) (*entity.Classroom, error) {
	return r.getBy(ctx, "id", id)
}

// GetByInviteCode matches the code exactly as stored; callers canonicalize
// case before submitting.
func (r *ClassroomRepository) GetByInviteCode(ctx context.Context, code string) (*entity.Classroom, error) {
	return r.getBy(ctx, "invite_code", code)
}

func (r *ClassroomRepository) getBy(ctx context.Context, column, value string) (*entity.Classroom, error) {
	c := &entity.Classroom{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, teacher_id, invite_code, created_at
		FROM classrooms
		WHERE `+column+` = $1
	`, value)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.TeacherID, &c.InviteCode, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// AddMember enrolls a student. The composite primary key makes re-enrolling
// a reported conflict, not a silent no-op.
func (r *ClassroomRepository) AddMember(ctx context.Context, classroomID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO classroom_members (classroom_id, user_id)
		VALUES ($1, $2)
	`, classroomID, userID)
	if err != nil {
		if uniqueViolation(err, "classroom_members_pkey") {
			return repository.ErrDuplicateMember
		}
		return err
	}
	return nil
}

func (r *ClassroomRepository) IsMember(ctx context.Context, classroomID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM classroom_members WHERE classroom_id = $1 AND user_id = $2
		)
	`, classroomID, userID).Scan(&exists)
	return exists, err
}

// ListMembers returns the teacher first, then students in enrollment order.
func (r *ClassroomRepository) ListMembers(ctx context.Context, classroomID string) ([]entity.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, 'teacher'
		FROM classrooms c JOIN users u ON u.id = c.teacher_id
		WHERE c.id = $1
		UNION ALL
		SELECT u.id, u.name, u.email, 'student'
		FROM classroom_members m JOIN users u ON u.id = m.user_id
		WHERE m.classroom_id = $1
	`, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []entity.Member
	for rows.Next() {
		var m entity.Member
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ListForUser returns classrooms where the user is the teacher or enrolled.
func (r *ClassroomRepository) ListForUser(ctx context.Context, userID string) ([]entity.Classroom, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, c.description, c.teacher_id, c.invite_code, c.created_at
		FROM classrooms c
		WHERE c.teacher_id = $1
		   OR EXISTS (SELECT 1 FROM classroom_members m WHERE m.classroom_id = c.id AND m.user_id = $1)
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classrooms []entity.Classroom
	for rows.Next() {
		var c entity.Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.TeacherID, &c.InviteCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}

// Delete cleans up memberships before removing the classroom row, inside one
// transaction. A retried delete after a failure finds the classroom still
// present and re-runs the same cleanup, converging to the same end state.
func (r *ClassroomRepository) Delete(ctx context.Context, classroomID, teacherID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		DELETE FROM classroom_members
		WHERE classroom_id IN (SELECT id FROM classrooms WHERE id = $1 AND teacher_id = $2)
	`, classroomID, teacherID); err != nil {
		return err
	}

	res, err := tx.Exec(ctx, `
		DELETE FROM classrooms WHERE id = $1 AND teacher_id = $2
	`, classroomID, teacherID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

var _ repository.ClassroomRepository = (*ClassroomRepository)(nil)

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
)

type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *entity.Announcement) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO announcements (classroom_id, author_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.ClassroomID, a.AuthorID, a.Title, a.Content)
	return row.Scan(&a.ID, &a.CreatedAt)
}

// ListByClassroom returns announcements newest first with author details.
func (r *AnnouncementRepository) ListByClassroom(ctx context.Context, classroomID string) ([]entity.Announcement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.classroom_id, a.author_id, u.name, u.email, a.title, a.content, a.created_at
		FROM announcements a JOIN users u ON u.id = a.author_id
		WHERE a.classroom_id = $1
		ORDER BY a.created_at DESC
	`, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Announcement
	for rows.Next() {
		var a entity.Announcement
		if err := rows.Scan(&a.ID, &a.ClassroomID, &a.AuthorID, &a.AuthorName, &a.AuthorEmail,
			&a.Title, &a.Content, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete conditions on the author so existence and authorization failures
// are indistinguishable to the caller.
func (r *AnnouncementRepository) Delete(ctx context.Context, announcementID, authorID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM announcements WHERE id = $1 AND author_id = $2
	`, announcementID, authorID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AnnouncementRepository = (*AnnouncementRepository)(nil)

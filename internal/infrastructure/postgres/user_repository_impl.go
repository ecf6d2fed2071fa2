package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
)

const userColumns = `id, name, email, password_hash, role, is_verified,
		verify_otp, verify_otp_expires_at, reset_otp, reset_otp_expires_at,
		created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_verified, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.Role)

	if err := row.Scan(&u.ID, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if uniqueViolation(err, "users_email_key") {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified,
		&u.VerifyOTP, &u.VerifyOTPExpiresAt, &u.ResetOTP, &u.ResetOTPExpiresAt,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// SetVerifyOTP is a single UPDATE: a concurrent issue for the same user can
// only produce one winner, never a mixed code/expiry pair.
func (r *UserRepository) SetVerifyOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return r.exec(ctx, `
		UPDATE users
		SET verify_otp = $1, verify_otp_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, code, expiresAt, userID)
}

func (r *UserRepository) ClearVerifyOTP(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET verify_otp = '', verify_otp_expires_at = 'epoch', updated_at = now()
		WHERE id = $1
	`, userID)
}

// ConsumeVerifyOTP conditions the write on the stored code so a code can be
// redeemed at most once, even under concurrent attempts.
func (r *UserRepository) ConsumeVerifyOTP(ctx context.Context, userID, code string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE, verify_otp = '', verify_otp_expires_at = 'epoch', updated_at = now()
		WHERE id = $1 AND verify_otp <> '' AND verify_otp = $2
	`, userID, code)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *UserRepository) SetResetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	return r.exec(ctx, `
		UPDATE users
		SET reset_otp = $1, reset_otp_expires_at = $2, updated_at = now()
		WHERE id = $3
	`, code, expiresAt, userID)
}

func (r *UserRepository) ClearResetOTP(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET reset_otp = '', reset_otp_expires_at = 'epoch', updated_at = now()
		WHERE id = $1
	`, userID)
}

func (r *UserRepository) ConsumeResetOTP(ctx context.Context, userID, code, newPasswordHash string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, reset_otp = '', reset_otp_expires_at = 'epoch', updated_at = now()
		WHERE id = $2 AND reset_otp <> '' AND reset_otp = $3
	`, newPasswordHash, userID, code)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *UserRepository) exec(ctx context.Context, sql string, args ...any) error {
	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

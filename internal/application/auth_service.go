package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/classtalk/classtalk-api/config"
	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
	"github.com/classtalk/classtalk-api/pkg/helpers"
	"github.com/classtalk/classtalk-api/pkg/mailer"
)

// AuthService owns credentials, sessions and the two OTP lifecycles.
// Every operation re-reads current user state before deciding; nothing is
// cached across requests.
type AuthService struct {
	Users        repository.UserRepository
	Audit        repository.AuditRepository
	JWT          *helpers.JWTManager
	Pub          *helpers.RabbitPublisher
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Cfg          *config.Config
}

func NewAuthService(users repository.UserRepository, audit repository.AuditRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, cfg *config.Config) *AuthService {
	return &AuthService{
		Users:        users,
		Audit:        audit,
		JWT:          jwt,
		Pub:          pub,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Cfg:          cfg,
	}
}

// Register creates the user and issues a session token. The email unique
// index is the authority on duplicates.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, string, time.Time, error) {
	if !role.Valid() {
		role = entity.RoleStudent
	}
	hash, err := helpers.HashPassword(password, s.Cfg.BcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u := &entity.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", time.Time{}, ErrEmailTaken
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.enqueueEmail(ctx, u.Email, "welcome", map[string]any{"name": u.Name, "email": u.Email})
	s.indexUser(ctx, u)
	s.audit(ctx, u.ID, u.Email, "register", nil)
	return u, token, exp, nil
}

// Login verifies credentials and issues a session token. Password comparison
// is bcrypt's constant-time check.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidEmail
		}
		return nil, "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		s.audit(ctx, u.ID, u.Email, "login_failed", nil)
		return nil, "", time.Time{}, ErrInvalidPassword
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.audit(ctx, u.ID, u.Email, "login", nil)
	return u, token, exp, nil
}

// Profile returns the user without credential material interpretation;
// handlers decide which fields to expose.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// RequestVerifyOTP issues a fresh verification code valid for the configured
// window (24h by default). Re-issuance overwrites any live code, so only the
// most recent code is ever redeemable. A failed email dispatch does not roll
// back issuance.
func (s *AuthService) RequestVerifyOTP(ctx context.Context, userID string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.Users.SetVerifyOTP(ctx, u.ID, code, time.Now().Add(s.Cfg.VerifyOTPTTL)); err != nil {
		return err
	}
	s.enqueueEmail(ctx, u.Email, "verify_otp", map[string]any{"code": code})
	s.audit(ctx, u.ID, u.Email, "verify_otp_issued", nil)
	return nil
}

// VerifyEmail redeems a verification code. An expired code is cleared as a
// side effect so it can never be redeemed on a later retry; the conditional
// consume in the store guarantees a code succeeds at most once.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, code string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	if u.VerifyOTP == "" || u.VerifyOTP != code {
		return ErrInvalidCode
	}
	if time.Now().After(u.VerifyOTPExpiresAt) {
		if err := s.Users.ClearVerifyOTP(ctx, u.ID); err != nil {
			return err
		}
		return ErrCodeExpired
	}
	ok, err := s.Users.ConsumeVerifyOTP(ctx, u.ID, code)
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race against a concurrent redeem or re-issue.
		return ErrInvalidCode
	}
	u.IsVerified = true
	s.indexUser(ctx, u)
	s.audit(ctx, u.ID, u.Email, "email_verified", nil)
	return nil
}

// RequestPasswordReset issues a reset code with a deliberately short window:
// reset is a higher-value target for guessing attacks than verification.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return err
	}
	if err := s.Users.SetResetOTP(ctx, u.ID, code, time.Now().Add(s.Cfg.ResetOTPTTL)); err != nil {
		return err
	}
	s.enqueueEmail(ctx, u.Email, "reset_otp", map[string]any{"code": code})
	s.audit(ctx, u.ID, u.Email, "reset_otp_issued", nil)
	return nil
}

// ResetPassword redeems a reset code and replaces the password hash in the
// same conditional write.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.ResetOTP == "" || u.ResetOTP != code {
		return ErrInvalidCode
	}
	if time.Now().After(u.ResetOTPExpiresAt) {
		if err := s.Users.ClearResetOTP(ctx, u.ID); err != nil {
			return err
		}
		return ErrCodeExpired
	}
	hash, err := helpers.HashPassword(newPassword, s.Cfg.BcryptCost)
	if err != nil {
		return err
	}
	ok, err := s.Users.ConsumeResetOTP(ctx, u.ID, code, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCode
	}
	s.audit(ctx, u.ID, u.Email, "password_reset", nil)
	return nil
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *AuthService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *AuthService) enqueueEmail(ctx context.Context, to, template string, data map[string]any) {
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("failed to publish email job")
	}
}

func (s *AuthService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          u.ID,
		"email":       u.Email,
		"name":        u.Name,
		"role":        u.Role,
		"is_verified": u.IsVerified,
		"created_at":  u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func (s *AuthService) audit(ctx context.Context, userID, email, action string, metadata map[string]any) {
	if s.Audit == nil {
		return
	}
	err := s.Audit.Insert(ctx, repository.AuditEntry{
		UserID:   userID,
		Email:    email,
		Action:   action,
		Metadata: metadata,
	})
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}

package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/classtalk/classtalk-api/internal/domain/entity"
	"github.com/classtalk/classtalk-api/internal/domain/repository"
)

// In-memory repositories mirroring the store's conditional-write semantics.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) SetVerifyOTP(_ context.Context, userID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.VerifyOTP = code
	u.VerifyOTPExpiresAt = expiresAt
	return nil
}

func (r *fakeUserRepo) ClearVerifyOTP(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.VerifyOTP = ""
	u.VerifyOTPExpiresAt = time.Time{}
	return nil
}

func (r *fakeUserRepo) ConsumeVerifyOTP(_ context.Context, userID, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if u.VerifyOTP == "" || u.VerifyOTP != code {
		return false, nil
	}
	u.VerifyOTP = ""
	u.VerifyOTPExpiresAt = time.Time{}
	u.IsVerified = true
	return true, nil
}

func (r *fakeUserRepo) SetResetOTP(_ context.Context, userID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetOTP = code
	u.ResetOTPExpiresAt = expiresAt
	return nil
}

func (r *fakeUserRepo) ClearResetOTP(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetOTP = ""
	u.ResetOTPExpiresAt = time.Time{}
	return nil
}

func (r *fakeUserRepo) ConsumeResetOTP(_ context.Context, userID, code, newPasswordHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if u.ResetOTP == "" || u.ResetOTP != code {
		return false, nil
	}
	u.ResetOTP = ""
	u.ResetOTPExpiresAt = time.Time{}
	u.PasswordHash = newPasswordHash
	return true, nil
}

// setExpiry backdates an OTP slot for expiry tests.
func (r *fakeUserRepo) setVerifyExpiry(userID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID].VerifyOTPExpiresAt = at
}

func (r *fakeUserRepo) setResetExpiry(userID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID].ResetOTPExpiresAt = at
}

func (r *fakeUserRepo) verifyOTP(userID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].VerifyOTP
}

func (r *fakeUserRepo) resetOTP(userID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].ResetOTP
}

type fakeClassroomRepo struct {
	mu         sync.Mutex
	seq        int
	classrooms map[string]*entity.Classroom
	members    map[string]map[string]bool // classroomID -> userID set
	users      *fakeUserRepo              // for member projections
}

func newFakeClassroomRepo(users *fakeUserRepo) *fakeClassroomRepo {
	return &fakeClassroomRepo{
		classrooms: map[string]*entity.Classroom{},
		members:    map[string]map[string]bool{},
		users:      users,
	}
}

func (r *fakeClassroomRepo) Create(_ context.Context, c *entity.Classroom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.classrooms {
		if existing.InviteCode == c.InviteCode {
			return repository.ErrDuplicateInviteCode
		}
	}
	r.seq++
	c.ID = fmt.Sprintf("classroom-%d", r.seq)
	c.CreatedAt = time.Now()
	cp := *c
	r.classrooms[c.ID] = &cp
	r.members[c.ID] = map[string]bool{}
	return nil
}

func (r *fakeClassroomRepo) GetByID(_ context.Context, id string) (*entity.Classroom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classrooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClassroomRepo) GetByInviteCode(_ context.Context, code string) (*entity.Classroom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.classrooms {
		if c.InviteCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeClassroomRepo) AddMember(_ context.Context, classroomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[classroomID]
	if !ok {
		return repository.ErrNotFound
	}
	if set[userID] {
		return repository.ErrDuplicateMember
	}
	set[userID] = true
	return nil
}

func (r *fakeClassroomRepo) IsMember(_ context.Context, classroomID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.members[classroomID][userID], nil
}

func (r *fakeClassroomRepo) ListMembers(_ context.Context, classroomID string) ([]entity.Member, error) {
	r.mu.Lock()
	c, ok := r.classrooms[classroomID]
	if !ok {
		r.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	ids := []string{c.TeacherID}
	for uid := range r.members[classroomID] {
		ids = append(ids, uid)
	}
	r.mu.Unlock()

	out := make([]entity.Member, 0, len(ids))
	for i, uid := range ids {
		role := entity.RoleStudent
		if i == 0 {
			role = entity.RoleTeacher
		}
		m := entity.Member{UserID: uid, Role: role}
		if u, err := r.users.GetByID(context.Background(), uid); err == nil {
			m.Name = u.Name
			m.Email = u.Email
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeClassroomRepo) ListForUser(_ context.Context, userID string) ([]entity.Classroom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Classroom
	for id, c := range r.classrooms {
		if c.TeacherID == userID || r.members[id][userID] {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClassroomRepo) Delete(_ context.Context, classroomID, teacherID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classrooms[classroomID]
	if !ok || c.TeacherID != teacherID {
		return repository.ErrNotFound
	}
	delete(r.members, classroomID)
	delete(r.classrooms, classroomID)
	return nil
}

type fakeAnnouncementRepo struct {
	mu            sync.Mutex
	seq           int
	announcements map[string]*entity.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{announcements: map[string]*entity.Announcement{}}
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, a *entity.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	a.ID = fmt.Sprintf("announcement-%d", r.seq)
	a.CreatedAt = time.Now()
	cp := *a
	r.announcements[a.ID] = &cp
	return nil
}

func (r *fakeAnnouncementRepo) ListByClassroom(_ context.Context, classroomID string) ([]entity.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Announcement
	for _, a := range r.announcements {
		if a.ClassroomID == classroomID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAnnouncementRepo) Delete(_ context.Context, id, authorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.announcements[id]
	if !ok || a.AuthorID != authorID {
		return repository.ErrNotFound
	}
	delete(r.announcements, id)
	return nil
}

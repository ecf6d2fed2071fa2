package entity

import "time"

// Classroom is owned by exactly one teacher. The invite code is globally
// unique, generated at creation and immutable.
type Classroom struct {
	ID          string
	Name        string
	Description string
	TeacherID   string
	InviteCode  string
	CreatedAt   time.Time
}

// Member is a user within a classroom, annotated with the role they hold
// there. The teacher is never also a student of their own classroom.
type Member struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

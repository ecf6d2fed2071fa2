package entity

import "time"

// Assignment is classwork created by the classroom's teacher, optionally
// carrying attachment URLs stored in object storage.
type Assignment struct {
	ID          string
	ClassroomID string
	Title       string
	Description string
	DueDate     *time.Time
	CreatedBy   string
	Attachments []string
	CreatedAt   time.Time
}

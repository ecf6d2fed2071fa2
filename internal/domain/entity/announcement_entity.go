package entity

import "time"

// Announcement is posted by the classroom's teacher. Author fields are
// populated from the users table on reads.
type Announcement struct {
	ID          string
	ClassroomID string
	AuthorID    string
	AuthorName  string
	AuthorEmail string
	Title       string
	Content     string
	CreatedAt   time.Time
}

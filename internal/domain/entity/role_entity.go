package entity

// Role is a user's role, either account-wide or resolved per classroom.
type Role string

const (
	RoleNone    Role = ""
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

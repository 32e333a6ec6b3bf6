package domain

import "time"

// Role classifies a user as a hotel guest or a staff member.
type Role string

const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleGuest || r == RoleStaff
}

// User is an identity record. Username and email are unique.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     string
	Role             Role
	ProfileCompleted bool
	CreatedAt        time.Time
}

// GuestProfile holds guest details, one-to-one with a User.
type GuestProfile struct {
	UserID      int64
	FirstName   string
	LastName    string
	DateOfBirth string
	Address     string
	Preferences map[string]any
}

// StaffProfile holds staff details, one-to-one with a User.
type StaffProfile struct {
	UserID      int64
	FirstName   string
	LastName    string
	DateOfBirth string
	Address     string
	PositionID  int64
	HireDate    string
}

package domain

// Position is a staff job position referenced by StaffProfile.
type Position struct {
	ID          int64
	Name        string
	Description string
}

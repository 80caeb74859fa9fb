package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Approves presences, manages accounts
	RoleEmployee Role = "employee" // Reports arrivals and departures
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	BadgeCode    string
	Role         Role
	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	TotalHours *float64
}

// IsAdmin checks if the user can approve presences and manage accounts.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if the user can process attendance approvals.
func (u *User) CanApprove() bool {
	return u.IsAdmin()
}

package models

// Role decides which dashboard and commands a user gets.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleResident Role = "RESIDENT"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleResident
}

// User is a profile record. Email is unique per identity.
type User struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Role       Role   `json:"role" validate:"required,oneof=ADMIN RESIDENT"`
	UnitNumber string `json:"unitNumber,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Avatar     string `json:"avatar,omitempty" validate:"omitempty,uri"`
}

// IsAdmin is false for a nil user.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

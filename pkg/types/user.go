package types

import "time"

type UserRole string

const (
	UserRoleNeedy UserRole = "needy"
	UserRoleDonor UserRole = "donor"
	UserRoleFund  UserRole = "fund"
)

// AllUserRoles is the registration allow-list. Role is fixed at
// registration and never changes afterwards.
var AllUserRoles = []UserRole{UserRoleNeedy, UserRoleDonor, UserRoleFund}

func (r UserRole) Valid() bool {
	for _, role := range AllUserRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Role         UserRole  `db:"role"`
	Phone        *string   `db:"phone"`
	Address      *string   `db:"address"`
	Bio          *string   `db:"bio"`
	CreatedAt    time.Time `db:"created_at"`
}

// DisplayName prefers the profile name over the bare email.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

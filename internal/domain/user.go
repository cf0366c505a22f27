package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleAdmin    UserRole = "admin"
	RoleOwner    UserRole = "owner"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Role         UserRole  `json:"role"`
	BusinessID   *int64    `json:"business_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsStaffOf reports whether the user belongs to the business's roster.
func (u *User) IsStaffOf(businessID int64) bool {
	return u.BusinessID != nil && *u.BusinessID == businessID &&
		(u.Role == RoleStaff || u.Role == RoleAdmin || u.Role == RoleOwner)
}

package domain

import "time"

type JoinRequestStatus string

const (
	JoinPending  JoinRequestStatus = "pending"
	JoinApproved JoinRequestStatus = "approved"
	JoinRejected JoinRequestStatus = "rejected"
)

type JoinRole string

const (
	JoinRoleAdmin JoinRole = "Admin"
	JoinRoleStaff JoinRole = "Staff"
)

// JoinRequest is a prospective staff member's request to be added to a
// business's roster. It is resolved exactly once, by the supervisor named
// at creation time, and never transitions back out of a resolved state.
type JoinRequest struct {
	ID                 int64             `json:"id"`
	BusinessID         int64             `json:"business_id" validate:"required"`
	UserID             int64             `json:"user_id" validate:"required"`
	SupervisorUsername string            `json:"supervisor_username" validate:"required"`
	Role               JoinRole          `json:"role" validate:"required"`
	Status             JoinRequestStatus `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	ResolvedAt         *time.Time        `json:"resolved_at,omitempty"`
}

// IsResolved reports whether the request reached a terminal state.
func (j *JoinRequest) IsResolved() bool {
	return j.Status == JoinApproved || j.Status == JoinRejected
}

// GrantedRole maps the requested join role onto a user role.
func (j *JoinRole) GrantedRole() UserRole {
	if *j == JoinRoleAdmin {
		return RoleAdmin
	}
	return RoleStaff
}

package staff

import (
	"context"

	"tablebook/internal/domain"
)

type JoinRequestRepository interface {
	Create(ctx context.Context, j *domain.JoinRequest) error
	GetByID(ctx context.Context, id int64) (*domain.JoinRequest, error)
	FindPending(ctx context.Context, userID, businessID int64) (*domain.JoinRequest, error)
	Resolve(ctx context.Context, id int64, status domain.JoinRequestStatus) error
	ListByBusiness(ctx context.Context, businessID int64) ([]domain.JoinRequest, error)
}

type UserRepository interface {
	GrantRole(ctx context.Context, userID int64, role domain.UserRole, businessID int64) error
}

type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

type NotificationSender interface {
	NotifyJoinRequestResolved(ctx context.Context, userID int64, approved bool, businessName string) error
}

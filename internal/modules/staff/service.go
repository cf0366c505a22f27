package staff

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type Service struct {
	requests   JoinRequestRepository
	users      UserRepository
	businesses BusinessRepository
	notifs     NotificationSender
}

func NewService(
	requests JoinRequestRepository,
	users UserRepository,
	businesses BusinessRepository,
	notifs NotificationSender,
) *Service {
	return &Service{
		requests:   requests,
		users:      users,
		businesses: businesses,
		notifs:     notifs,
	}
}

// CreateJoinRequest opens a pending request against a business. A second
// request while one is still pending for the same (user, business) pair is
// rejected as a duplicate rather than updated in place.
func (s *Service) CreateJoinRequest(ctx context.Context, userID int64, req CreateJoinRequest) (*domain.JoinRequest, error) {
	role := domain.JoinRole(req.Role)
	if role != domain.JoinRoleAdmin && role != domain.JoinRoleStaff {
		return nil, ErrValidation
	}

	if _, err := s.businesses.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	existing, err := s.requests.FindPending(ctx, userID, req.BusinessID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}

	j := &domain.JoinRequest{
		BusinessID:         req.BusinessID,
		UserID:             userID,
		SupervisorUsername: req.SupervisorUsername,
		Role:               role,
		Status:             domain.JoinPending,
	}
	if err := s.requests.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// GetJoinRequest is the poll target: each call is a fresh read of the
// request's status, with no server-side session.
func (s *Service) GetJoinRequest(ctx context.Context, id int64) (*domain.JoinRequest, error) {
	j, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

// Resolve applies the one-way pending -> approved|rejected transition.
// Only the supervisor named at request time may act; the username is taken
// on trust and not re-validated against a directory. Approval grants the
// requested role and moves the requester onto the business's roster.
func (s *Service) Resolve(ctx context.Context, id int64, actorUsername string, approve bool) (*domain.JoinRequest, error) {
	j, err := s.GetJoinRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.IsResolved() {
		return nil, ErrAlreadyResolved
	}
	if j.SupervisorUsername != actorUsername {
		return nil, ErrForbidden
	}

	status := domain.JoinRejected
	if approve {
		status = domain.JoinApproved
	}

	if err := s.requests.Resolve(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrAlreadyResolved
		}
		return nil, err
	}

	if approve {
		if err := s.users.GrantRole(ctx, j.UserID, j.Role.GrantedRole(), j.BusinessID); err != nil {
			return nil, err
		}
	}

	if s.notifs != nil {
		name := ""
		if biz, berr := s.businesses.GetByID(ctx, j.BusinessID); berr == nil {
			name = biz.Name
		}
		_ = s.notifs.NotifyJoinRequestResolved(ctx, j.UserID, approve, name)
	}

	return s.GetJoinRequest(ctx, id)
}

func (s *Service) ListByBusiness(ctx context.Context, businessID int64) ([]domain.JoinRequest, error) {
	return s.requests.ListByBusiness(ctx, businessID)
}

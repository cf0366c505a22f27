package notification

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

// Service is the append-only notification ledger. Rows are created by the
// other modules through the Notify* helpers and only ever change once, when
// the recipient marks them read.
type Service struct {
	repo NotificationRepository
	hub  *Hub
}

// NewService accepts a nil hub; delivery then falls back to the ledger only.
func NewService(repo NotificationRepository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, reservationID *int64) (*domain.Notification, error) {
	n := &domain.Notification{
		UserID:        userID,
		Type:          t,
		Title:         title,
		Message:       message,
		ReservationID: reservationID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, n)
	}
	return n, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead returns the already-read flag so callers can tell a fresh read
// from a repeat. Repeats are not errors.
func (s *Service) MarkRead(ctx context.Context, id, userID int64) (changed bool, err error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	if n.UserID != userID {
		return false, ErrForbidden
	}

	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) NotifyNewReservation(ctx context.Context, ownerUserID, reservationID int64, businessName string) error {
	_, err := s.Create(
		ctx,
		ownerUserID,
		domain.NotifNewReservation,
		"New reservation",
		fmt.Sprintf("A new reservation was placed at %s", businessName),
		&reservationID,
	)
	return err
}

func (s *Service) NotifyReservationConfirmed(ctx context.Context, customerID, reservationID int64) error {
	_, err := s.Create(
		ctx,
		customerID,
		domain.NotifConfirmed,
		"Reservation confirmed",
		"Your reservation has been confirmed",
		&reservationID,
	)
	return err
}

func (s *Service) NotifyReservationCancelled(ctx context.Context, customerID, reservationID int64, reason string) error {
	msg := "Your reservation has been cancelled"
	if reason != "" {
		msg = msg + ". Reason: " + reason
	}
	_, err := s.Create(
		ctx,
		customerID,
		domain.NotifCancelled,
		"Reservation cancelled",
		msg,
		&reservationID,
	)
	return err
}

func (s *Service) NotifyJoinRequestResolved(ctx context.Context, userID int64, approved bool, businessName string) error {
	title := "Join request rejected"
	msg := fmt.Sprintf("Your request to join %s was rejected", businessName)
	if approved {
		title = "Join request approved"
		msg = fmt.Sprintf("Your request to join %s was approved", businessName)
	}
	_, err := s.Create(ctx, userID, domain.NotifJoinResolved, title, msg, nil)
	return err
}

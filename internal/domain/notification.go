package domain

import "time"

type NotificationType string

const (
	NotifNewReservation NotificationType = "new_reservation"
	NotifConfirmed      NotificationType = "reservation_confirmed"
	NotifCancelled      NotificationType = "reservation_cancelled"
	NotifReminder       NotificationType = "reminder"
	NotifPromotional    NotificationType = "promotional"
	NotifJoinResolved   NotificationType = "join_request_resolved"
)

type Notification struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message,omitempty"`
	ReservationID *int64           `json:"reservation_id,omitempty"`
	IsRead        bool             `json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
	ReadAt        *time.Time       `json:"read_at,omitempty"`
}

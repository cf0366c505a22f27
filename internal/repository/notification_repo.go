package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	UserID        int64      `gorm:"column:user_id;index"`
	Type          string     `gorm:"column:type"`
	Title         string     `gorm:"column:title"`
	Message       *string    `gorm:"column:message"`
	ReservationID *int64     `gorm:"column:reservation_id"`
	IsRead        bool       `gorm:"column:is_read"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	ReadAt        *time.Time `gorm:"column:read_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) *domain.Notification {
	var msg string
	if m.Message != nil {
		msg = *m.Message
	}
	return &domain.Notification{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          domain.NotificationType(m.Type),
		Title:         m.Title,
		Message:       msg,
		ReservationID: m.ReservationID,
		IsRead:        m.IsRead,
		CreatedAt:     m.CreatedAt,
		ReadAt:        m.ReadAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	var msg *string
	if n.Message != "" {
		v := n.Message
		msg = &v
	}
	m := notificationModel{
		UserID:        n.UserID,
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       msg,
		ReservationID: n.ReservationID,
		IsRead:        false,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*n = *toDomainNotification(m)
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	var m notificationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainNotification(m), nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	var rows []notificationModel
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainNotification(m))
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("notifications").
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// MarkRead flips is_read exactly once. The is_read = false guard keeps the
// operation idempotent and commutative under concurrent markers: a second
// call matches zero rows and changes nothing.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Table("notifications").
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": &now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Table("notifications").
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": &now,
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

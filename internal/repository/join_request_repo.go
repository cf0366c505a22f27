package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

type joinRequestModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	BusinessID         int64      `gorm:"column:business_id;index"`
	UserID             int64      `gorm:"column:user_id;index"`
	SupervisorUsername string     `gorm:"column:supervisor_username"`
	Role               string     `gorm:"column:role"`
	Status             string     `gorm:"column:status"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	ResolvedAt         *time.Time `gorm:"column:resolved_at"`
}

func (joinRequestModel) TableName() string { return "join_requests" }

func toDomainJoinRequest(m joinRequestModel) *domain.JoinRequest {
	return &domain.JoinRequest{
		ID:                 m.ID,
		BusinessID:         m.BusinessID,
		UserID:             m.UserID,
		SupervisorUsername: m.SupervisorUsername,
		Role:               domain.JoinRole(m.Role),
		Status:             domain.JoinRequestStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		ResolvedAt:         m.ResolvedAt,
	}
}

func (r *JoinRequestRepository) Create(ctx context.Context, j *domain.JoinRequest) error {
	m := joinRequestModel{
		BusinessID:         j.BusinessID,
		UserID:             j.UserID,
		SupervisorUsername: j.SupervisorUsername,
		Role:               string(j.Role),
		Status:             string(j.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*j = *toDomainJoinRequest(m)
	return nil
}

func (r *JoinRequestRepository) GetByID(ctx context.Context, id int64) (*domain.JoinRequest, error) {
	var m joinRequestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainJoinRequest(m), nil
}

// FindPending returns the pending request for a (user, business) pair, if
// any. Backs the duplicate-request rejection.
func (r *JoinRequestRepository) FindPending(ctx context.Context, userID, businessID int64) (*domain.JoinRequest, error) {
	var m joinRequestModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND business_id = ? AND status = ?", userID, businessID, string(domain.JoinPending)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainJoinRequest(m), nil
}

// Resolve performs the one-way pending -> approved|rejected transition. The
// guarded WHERE makes re-resolution a no-op the service reports as a
// conflict, so a resolved request stays immutable.
func (r *JoinRequestRepository) Resolve(ctx context.Context, id int64, status domain.JoinRequestStatus) error {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Table("join_requests").
		Where("id = ? AND status = ?", id, string(domain.JoinPending)).
		Updates(map[string]any{
			"status":      string(status),
			"resolved_at": &now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *JoinRequestRepository) ListByBusiness(ctx context.Context, businessID int64) ([]domain.JoinRequest, error) {
	var rows []joinRequestModel
	tx := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.JoinRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainJoinRequest(m))
	}
	return out, nil
}

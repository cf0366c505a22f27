package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

type slotModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BusinessID int64     `gorm:"column:business_id;index"`
	StartTime  time.Time `gorm:"column:start_time"`
	EndTime    time.Time `gorm:"column:end_time"`
	Status     string    `gorm:"column:status"`
	Capacity   int       `gorm:"column:capacity"`
	PriorityID int64     `gorm:"column:priority_id"`
	Version    int64     `gorm:"column:version"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (slotModel) TableName() string { return "slots" }

func toDomainSlot(m slotModel) *domain.Slot {
	return &domain.Slot{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Status:     domain.SlotStatus(m.Status),
		Capacity:   m.Capacity,
		PriorityID: m.PriorityID,
		Version:    m.Version,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toSlotModel(s *domain.Slot) slotModel {
	return slotModel{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Status:     string(s.Status),
		Capacity:   s.Capacity,
		PriorityID: s.PriorityID,
		Version:    s.Version,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *SlotRepository) Create(ctx context.Context, s *domain.Slot) error {
	m := toSlotModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSlot(m)
	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	var m slotModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSlot(m), nil
}

type SlotFilter struct {
	BusinessID *int64
	Status     *domain.SlotStatus
}

// List returns slots ordered by priority rank (vip first) then start time.
func (r *SlotRepository) List(ctx context.Context, f SlotFilter, limit, offset int) ([]domain.Slot, error) {
	q := r.db.WithContext(ctx).
		Table("slots").
		Select("slots.*").
		Joins("LEFT JOIN priorities p ON p.id = slots.priority_id").
		Order("p.rank DESC, slots.start_time ASC")

	if f.BusinessID != nil {
		q = q.Where("slots.business_id = ?", *f.BusinessID)
	}
	if f.Status != nil {
		q = q.Where("slots.status = ?", string(*f.Status))
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []slotModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Slot, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainSlot(m))
	}
	return out, nil
}

// UpdateFields applies a partial update. The service validated the field set
// and the status transition before calling.
func (r *SlotRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	fields["version"] = gorm.Expr("version + 1")
	tx := r.db.WithContext(ctx).
		Table("slots").
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStatusWithVersion performs the optimistic status transition used when a
// reservation claims or releases the slot.
func (r *SlotRepository) SetStatusWithVersion(ctx context.Context, id, version int64, status domain.SlotStatus) error {
	tx := r.db.WithContext(ctx).
		Table("slots").
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"status":     string(status),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&slotModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

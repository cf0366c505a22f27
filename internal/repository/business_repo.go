package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

type businessModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	OwnerID     int64      `gorm:"column:owner_id"`
	Name        string     `gorm:"column:name"`
	Description *string    `gorm:"column:description"`
	Address     *string    `gorm:"column:address"`
	City        *string    `gorm:"column:city"`
	OpeningTime string     `gorm:"column:opening_time"`
	ClosingTime string     `gorm:"column:closing_time"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
}

func (businessModel) TableName() string { return "businesses" }

func toDomainBusiness(m businessModel) *domain.Business {
	b := &domain.Business{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		OpeningTime: m.OpeningTime,
		ClosingTime: m.ClosingTime,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
	if m.Description != nil {
		b.Description = *m.Description
	}
	if m.Address != nil {
		b.Address = *m.Address
	}
	if m.City != nil {
		b.City = *m.City
	}
	return b
}

func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	var m businessModel
	tx := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBusiness(m), nil
}

func (r *BusinessRepository) List(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	var rows []businessModel
	tx := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Business, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBusiness(m))
	}
	return out, nil
}

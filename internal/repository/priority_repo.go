package repository

import (
	"context"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type PriorityRepository struct {
	db *gorm.DB
}

func NewPriorityRepository(db *gorm.DB) *PriorityRepository {
	return &PriorityRepository{db: db}
}

type priorityModel struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;uniqueIndex"`
	Rank int    `gorm:"column:rank"`
}

func (priorityModel) TableName() string { return "priorities" }

func (r *PriorityRepository) GetByID(ctx context.Context, id int64) (*domain.Priority, error) {
	var m priorityModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.Priority{ID: m.ID, Name: m.Name, Rank: m.Rank}, nil
}

func (r *PriorityRepository) GetByName(ctx context.Context, name string) (*domain.Priority, error) {
	var m priorityModel
	tx := r.db.WithContext(ctx).Where("name = ?", name).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.Priority{ID: m.ID, Name: m.Name, Rank: m.Rank}, nil
}

func (r *PriorityRepository) List(ctx context.Context) ([]domain.Priority, error) {
	var rows []priorityModel
	tx := r.db.WithContext(ctx).Order("rank DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Priority, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Priority{ID: m.ID, Name: m.Name, Rank: m.Rank})
	}
	return out, nil
}

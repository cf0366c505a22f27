package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

type tableModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BusinessID int64     `gorm:"column:business_id;index"`
	Label      string    `gorm:"column:label"`
	Capacity   int       `gorm:"column:capacity"`
	Status     string    `gorm:"column:status"`
	PosX       int       `gorm:"column:pos_x"`
	PosY       int       `gorm:"column:pos_y"`
	Version    int64     `gorm:"column:version"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (tableModel) TableName() string { return "tables" }

func toDomainTable(m tableModel) *domain.Table {
	return &domain.Table{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		Label:      m.Label,
		Capacity:   m.Capacity,
		Status:     domain.TableStatus(m.Status),
		PosX:       m.PosX,
		PosY:       m.PosY,
		Version:    m.Version,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *TableRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	var m tableModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTable(m), nil
}

func (r *TableRepository) ListByBusiness(ctx context.Context, businessID int64) ([]domain.Table, error) {
	var rows []tableModel
	tx := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("label ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Table, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTable(m))
	}
	return out, nil
}

// ReserveWithVersion is the commit half of table assignment. The caller
// filtered and selected under a plain read; this compare-and-set is what
// actually acquires the table. Zero rows affected means another writer got
// there first and the caller must surface a conflict.
func (r *TableRepository) ReserveWithVersion(ctx context.Context, tableID, version int64) error {
	tx := r.db.WithContext(ctx).
		Table("tables").
		Where("id = ? AND version = ? AND status = ?", tableID, version, string(domain.TableAvailable)).
		Updates(map[string]any{
			"status":     string(domain.TableReserved),
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

// Release returns a table to the available pool, e.g. after a cancellation,
// a completed visit, or an edit that moved the party elsewhere.
func (r *TableRepository) Release(ctx context.Context, tableID int64) error {
	return r.db.WithContext(ctx).
		Table("tables").
		Where("id = ?", tableID).
		Updates(map[string]any{
			"status":     string(domain.TableAvailable),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		}).Error
}

// SetStatus applies an unconditional status change (check-in to occupied,
// vacate back to available). Bumps the version like every other writer.
func (r *TableRepository) SetStatus(ctx context.Context, tableID int64, status domain.TableStatus) error {
	return r.db.WithContext(ctx).
		Table("tables").
		Where("id = ?", tableID).
		Updates(map[string]any{
			"status":     string(status),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		}).Error
}

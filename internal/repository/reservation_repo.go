package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	SlotID      *int64     `gorm:"column:slot_id;index"`
	TableID     int64      `gorm:"column:table_id;index"`
	BusinessID  int64      `gorm:"column:business_id;index"`
	CustomerID  int64      `gorm:"column:customer_id;index"`
	PartySize   int        `gorm:"column:party_size"`
	Date        string     `gorm:"column:date"`
	Time        string     `gorm:"column:time"`
	Notes       *string    `gorm:"column:notes"`
	Status      string     `gorm:"column:status"`
	Price       int        `gorm:"column:price"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}
	return &domain.Reservation{
		ID:          m.ID,
		SlotID:      m.SlotID,
		TableID:     m.TableID,
		BusinessID:  m.BusinessID,
		CustomerID:  m.CustomerID,
		PartySize:   m.PartySize,
		Date:        m.Date,
		Time:        m.Time,
		Notes:       notes,
		Status:      domain.ReservationStatus(m.Status),
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	var notes *string
	if r.Notes != "" {
		v := r.Notes
		notes = &v
	}
	return reservationModel{
		ID:          r.ID,
		SlotID:      r.SlotID,
		TableID:     r.TableID,
		BusinessID:  r.BusinessID,
		CustomerID:  r.CustomerID,
		PartySize:   r.PartySize,
		Date:        r.Date,
		Time:        r.Time,
		Notes:       notes,
		Status:      string(r.Status),
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CancelledAt: r.CancelledAt,
	}
}

// Create inserts the reservation. The partial unique index
// idx_no_double_booking on active (table_id, date, time) rows is the final
// double-booking guard; a unique violation surfaces as a driver error the
// service maps to a conflict.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	fields := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if status == domain.ReservationCancelled {
		now := time.Now().UTC()
		fields["cancelled_at"] = &now
	}
	tx := r.db.WithContext(ctx).
		Table("reservations").
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

func (r *ReservationRepository) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Reservation, error) {
	var rows []reservationModel
	q := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// CountActiveBySlot counts pending and confirmed reservations inside a slot.
// Slot.Capacity caps this number.
func (r *ReservationRepository) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("reservations").
		Where("slot_id = ? AND status IN ?", slotID, []string{
			string(domain.ReservationPending),
			string(domain.ReservationConfirmed),
		}).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(cnt), nil
}

// HasActiveForSlot backs the slot-delete guard.
func (r *ReservationRepository) HasActiveForSlot(ctx context.Context, slotID int64) (bool, error) {
	cnt, err := r.CountActiveBySlot(ctx, slotID)
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// HasActiveForTableAt reports whether an active reservation already holds the
// (table, date, time) window. The unique index remains the authoritative
// guard; this read keeps the common path's error message friendly.
func (r *ReservationRepository) HasActiveForTableAt(ctx context.Context, tableID int64, date, timeOfDay string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Table("reservations").
		Where("table_id = ? AND date = ? AND time = ? AND status IN ?", tableID, date, timeOfDay, []string{
			string(domain.ReservationPending),
			string(domain.ReservationConfirmed),
		}).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentOrderModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	ReservationID int64      `gorm:"column:reservation_id;index"`
	OrderID       string     `gorm:"column:order_id;uniqueIndex"`
	Amount        int        `gorm:"column:amount"`
	Currency      string     `gorm:"column:currency"`
	Status        string     `gorm:"column:status"`
	CheckoutURL   string     `gorm:"column:checkout_url"`
	Signature     string     `gorm:"column:signature"`
	RawCallback   *string    `gorm:"column:raw_callback"`
	PaidAt        *time.Time `gorm:"column:paid_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (paymentOrderModel) TableName() string { return "payment_orders" }

func toDomainPaymentOrder(m paymentOrderModel) *domain.PaymentOrder {
	var raw string
	if m.RawCallback != nil {
		raw = *m.RawCallback
	}
	return &domain.PaymentOrder{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		OrderID:       m.OrderID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Status:        domain.PaymentOrderStatus(m.Status),
		CheckoutURL:   m.CheckoutURL,
		Signature:     m.Signature,
		RawCallback:   raw,
		PaidAt:        m.PaidAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.PaymentOrder) error {
	m := paymentOrderModel{
		ReservationID: p.ReservationID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		CheckoutURL:   p.CheckoutURL,
		Signature:     p.Signature,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPaymentOrder(m)
	return nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	var m paymentOrderModel
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPaymentOrder(m), nil
}

// MarkPaidIdempotent flips the order to paid exactly once. Returns false
// when the order was already paid, which a repeated callback is.
func (r *PaymentRepository) MarkPaidIdempotent(ctx context.Context, orderID, rawCallback string, paidAt time.Time) (bool, error) {
	tx := r.db.WithContext(ctx).
		Table("payment_orders").
		Where("order_id = ? AND status <> ?", orderID, string(domain.PaymentStatusPaid)).
		Updates(map[string]any{
			"status":       string(domain.PaymentStatusPaid),
			"raw_callback": rawCallback,
			"paid_at":      &paidAt,
			"updated_at":   time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, orderID string, status domain.PaymentOrderStatus, rawCallback string) error {
	return r.db.WithContext(ctx).
		Table("payment_orders").
		Where("order_id = ?", orderID).
		Updates(map[string]any{
			"status":       string(status),
			"raw_callback": rawCallback,
			"updated_at":   time.Now().UTC(),
		}).Error
}

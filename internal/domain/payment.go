package domain

import "time"

type PaymentOrderStatus string

const (
	PaymentStatusCreated PaymentOrderStatus = "created"
	PaymentStatusPending PaymentOrderStatus = "pending"
	PaymentStatusPaid    PaymentOrderStatus = "paid"
	PaymentStatusFailed  PaymentOrderStatus = "failed"
)

// PaymentOrder is the ledger entry for one checkout handoff to the external
// payment collaborator. The reservation it references stays pending until
// the signed callback for this order verifies.
type PaymentOrder struct {
	ID            int64              `json:"id"`
	ReservationID int64              `json:"reservation_id"`
	OrderID       string             `json:"order_id" gorm:"uniqueIndex"`
	Amount        int                `json:"amount"`
	Currency      string             `json:"currency"`
	Status        PaymentOrderStatus `json:"status"`
	CheckoutURL   string             `json:"checkout_url"`
	Signature     string             `json:"-"`
	RawCallback   string             `json:"-" gorm:"type:text"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

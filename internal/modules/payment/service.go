package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"tablebook/internal/domain"
	"tablebook/internal/modules/reservation"
)

type Service struct {
	payments     PaymentRepository
	reservations ReservationReader
	confirmer    ReservationConfirmer
	loggerf      func(format string, args ...interface{})

	merchantID string
	secret     string
	currency   string
}

func NewService(
	payments PaymentRepository,
	reservations ReservationReader,
	confirmer ReservationConfirmer,
	merchantID, secret, currency string,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		payments:     payments,
		reservations: reservations,
		confirmer:    confirmer,
		loggerf:      loggerf,
		merchantID:   merchantID,
		secret:       secret,
		currency:     currency,
	}
}

// InitPayment opens a payment order for a pending reservation. The amount
// comes off the reservation's price tier and the checkout link is the fixed
// destination for that tier.
func (s *Service) InitPayment(ctx context.Context, req InitPaymentRequest) (*InitPaymentResponse, error) {
	if s.merchantID == "" || s.secret == "" {
		return nil, ErrNotConfigured
	}

	res, err := s.reservations.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reservation check failed: %w", err)
	}

	orderID := fmt.Sprintf("TB-%d-%d", res.ID, time.Now().UnixNano())
	amount := strconv.Itoa(res.Price)
	signature := s.signature(orderID, amount, string(domain.PaymentStatusCreated))

	p := &domain.PaymentOrder{
		ReservationID: res.ID,
		OrderID:       orderID,
		Amount:        res.Price,
		Currency:      s.currency,
		Status:        domain.PaymentStatusCreated,
		CheckoutURL:   reservation.PaymentDestinationFor(res.Price),
		Signature:     signature,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment order failed: %w", err)
	}

	return &InitPaymentResponse{
		OrderID:     p.OrderID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		CheckoutURL: p.CheckoutURL,
		Signature:   p.Signature,
		Status:      string(p.Status),
	}, nil
}

// HandleCallback verifies and applies the collaborator's result post.
// Verification happens before any state change; a repeated callback for an
// already-paid order is acknowledged without effect. The ack body is
// "OK" plus the order id, which the collaborator requires verbatim.
func (s *Service) HandleCallback(ctx context.Context, req CallbackRequest, rawBody string) (string, error) {
	valid := strings.EqualFold(req.Signature, s.signature(req.OrderID, req.Amount, req.Status))
	s.loggerf("level=info msg=payment callback signature validation order_id=%s signature_valid=%t", req.OrderID, valid)
	if !valid {
		_ = s.payments.UpdateStatus(ctx, req.OrderID, domain.PaymentStatusFailed, rawBody)
		return "", ErrInvalidSignature
	}

	p, err := s.payments.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	if !amountEqual(req.Amount, strconv.Itoa(p.Amount)) {
		s.loggerf("level=error msg=amount mismatch on callback order_id=%s callback_amount=%s expected=%d", req.OrderID, req.Amount, p.Amount)
		_ = s.payments.UpdateStatus(ctx, req.OrderID, domain.PaymentStatusFailed, rawBody)
		return "", ErrAmountMismatch
	}

	if !strings.EqualFold(req.Status, "success") {
		if err := s.payments.UpdateStatus(ctx, req.OrderID, domain.PaymentStatusFailed, rawBody); err != nil {
			return "", err
		}
		return "OK" + req.OrderID, nil
	}

	changed, err := s.payments.MarkPaidIdempotent(ctx, req.OrderID, rawBody, time.Now().UTC())
	if err != nil {
		return "", err
	}
	if !changed {
		s.loggerf("level=info msg=idempotent callback already paid order_id=%s", req.OrderID)
		return "OK" + req.OrderID, nil
	}

	if err := s.confirmer.ConfirmFromPayment(ctx, p.ReservationID); err != nil {
		s.loggerf("level=error msg=failed to confirm reservation from payment reservation_id=%d err=%v", p.ReservationID, err)
	}

	return "OK" + req.OrderID, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	p, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) signature(orderID, amount, status string) string {
	parts := []string{s.merchantID, orderID, amount, s.currency, status, s.secret}
	return md5Hex(strings.Join(parts, ":"))
}

func amountEqual(a, b string) bool {
	ar, ok := new(big.Rat).SetString(strings.TrimSpace(a))
	if !ok {
		return false
	}
	br, ok := new(big.Rat).SetString(strings.TrimSpace(b))
	if !ok {
		return false
	}
	return ar.Cmp(br) == 0
}

func md5Hex(s string) string {
	h := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

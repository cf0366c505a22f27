package reservation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type Service struct {
	reservations ReservationRepository
	tables       TableRepository
	slots        SlotRepository
	businesses   BusinessRepository
	notifs       NotificationSender
}

func NewService(
	reservations ReservationRepository,
	tables TableRepository,
	slots SlotRepository,
	businesses BusinessRepository,
	notifs NotificationSender,
) *Service {
	return &Service{
		reservations: reservations,
		tables:       tables,
		slots:        slots,
		businesses:   businesses,
		notifs:       notifs,
	}
}

// ListEligibleTables returns the tables a party of the given size may pick
// from. The typed not-eligible error distinguishes "nothing is big enough"
// from "everything big enough is taken".
func (s *Service) ListEligibleTables(ctx context.Context, businessID int64, partySize int) ([]domain.Table, error) {
	if partySize < domain.MinPartySize || partySize > domain.MaxPartySize {
		return nil, ErrValidation
	}
	if _, err := s.businesses.GetByID(ctx, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tables, err := s.tables.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return EligibleTables(tables, partySize)
}

// CreateReservation books the explicitly chosen table for the party. The
// eligibility filter ran under a plain read, so the commit re-acquires the
// table with a version check; losing that race is a conflict the client
// resolves by re-selecting, not by blind retry.
func (s *Service) CreateReservation(ctx context.Context, customerID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return nil, ErrValidation
	}
	if req.Date == "" || req.Time == "" {
		return nil, ErrValidation
	}

	table, err := s.tables.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	if table.BusinessID != req.BusinessID {
		return nil, ErrValidation
	}

	if err := ValidateChoice(table, req.PartySize); err != nil {
		return nil, err
	}

	var slot *domain.Slot
	if req.SlotID != nil {
		slot, err = s.slots.GetByID(ctx, *req.SlotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSlotNotFound
			}
			return nil, err
		}
		if slot.BusinessID != req.BusinessID {
			return nil, ErrValidation
		}
		if !slot.IsBookable() {
			return nil, &NotEligibleError{Reason: ReasonNoAvailability}
		}

		// Slot capacity caps concurrent active reservations in the
		// window, independent of table seating.
		active, cerr := s.reservations.CountActiveBySlot(ctx, slot.ID)
		if cerr != nil {
			return nil, cerr
		}
		if active >= slot.Capacity {
			return nil, &NotEligibleError{Reason: ReasonNoAvailability}
		}
	}

	if err := s.tables.ReserveWithVersion(ctx, table.ID, table.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}

	res := &domain.Reservation{
		SlotID:     req.SlotID,
		TableID:    table.ID,
		BusinessID: req.BusinessID,
		CustomerID: customerID,
		PartySize:  req.PartySize,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
		Status:     domain.ReservationPending,
		Price:      PriceFor(req.PartySize),
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		_ = s.tables.Release(ctx, table.ID)
		if isDoubleBookingViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if slot != nil && slot.Status == domain.SlotAvailable {
		// First booking claims the slot; losing this particular race
		// just means another reservation already flipped it.
		if serr := s.slots.SetStatusWithVersion(ctx, slot.ID, slot.Version, domain.SlotReserved); serr != nil &&
			!errors.Is(serr, repository.ErrVersionConflict) {
			return nil, serr
		}
	}

	if s.notifs != nil {
		if biz, berr := s.businesses.GetByID(ctx, req.BusinessID); berr == nil {
			_ = s.notifs.NotifyNewReservation(ctx, biz.OwnerID, res.ID, biz.Name)
		}
	}

	return res, nil
}

func (s *Service) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *Service) MyReservations(ctx context.Context, customerID int64, limit, offset int) ([]domain.Reservation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reservations.ListByCustomer(ctx, customerID, limit, offset)
}

// EditReservation updates an active reservation. Growing the party or
// moving to a different table re-runs assignment against the new
// parameters; shrinking the party never re-validates capacity. A table
// change releases the previously held table only after the new one is
// acquired.
func (s *Service) EditReservation(ctx context.Context, id, actorID int64, actorRole string, req UpdateReservationRequest) (*domain.Reservation, error) {
	if req.isEmpty() {
		return nil, ErrValidation
	}

	res, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayManage(res, actorID, actorRole) {
		return nil, ErrForbidden
	}
	if !res.CanBeEdited() {
		return nil, ErrInvalidTransition
	}

	newParty := res.PartySize
	if req.PartySize != nil {
		newParty = *req.PartySize
		if newParty < domain.MinPartySize || newParty > domain.MaxPartySize {
			return nil, ErrValidation
		}
	}
	grew := newParty > res.PartySize

	newDate, newTime := res.Date, res.Time
	if req.Date != nil {
		newDate = *req.Date
	}
	if req.Time != nil {
		newTime = *req.Time
	}
	if newDate == "" || newTime == "" {
		return nil, ErrValidation
	}
	windowMoved := newDate != res.Date || newTime != res.Time

	tableChanged := req.TableID != nil && *req.TableID != res.TableID

	oldTableID := res.TableID
	if tableChanged {
		table, terr := s.tables.GetByID(ctx, *req.TableID)
		if terr != nil {
			if errors.Is(terr, gorm.ErrRecordNotFound) {
				return nil, ErrTableNotFound
			}
			return nil, terr
		}
		if table.BusinessID != res.BusinessID {
			return nil, ErrValidation
		}
		if verr := ValidateChoice(table, newParty); verr != nil {
			return nil, verr
		}
		if rerr := s.tables.ReserveWithVersion(ctx, table.ID, table.Version); rerr != nil {
			if errors.Is(rerr, repository.ErrVersionConflict) {
				return nil, ErrConflict
			}
			return nil, rerr
		}
		res.TableID = table.ID
	} else if grew {
		table, terr := s.tables.GetByID(ctx, res.TableID)
		if terr != nil {
			return nil, terr
		}
		if !table.Fits(newParty) {
			return nil, &NotEligibleError{Reason: ReasonCapacityExceeded}
		}
	}

	if windowMoved {
		taken, werr := s.reservations.HasActiveForTableAt(ctx, res.TableID, newDate, newTime)
		if werr != nil {
			return nil, werr
		}
		if taken {
			if tableChanged {
				_ = s.tables.Release(ctx, res.TableID)
			}
			return nil, ErrConflict
		}
	}

	res.PartySize = newParty
	res.Date = newDate
	res.Time = newTime
	if req.Notes != nil {
		res.Notes = *req.Notes
	}
	res.Price = PriceFor(newParty)

	if err := s.reservations.Update(ctx, res); err != nil {
		if tableChanged {
			_ = s.tables.Release(ctx, res.TableID)
		}
		if isDoubleBookingViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	if tableChanged {
		_ = s.tables.Release(ctx, oldTableID)
	}

	return res, nil
}

// CancelReservation moves an active reservation to cancelled, releases the
// table, and returns the slot to available when this was its sole holder.
func (s *Service) CancelReservation(ctx context.Context, id, actorID int64, actorRole, reason string) (*domain.Reservation, error) {
	res, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayManage(res, actorID, actorRole) {
		return nil, ErrForbidden
	}
	if !res.CanBeCancelled() {
		return nil, ErrInvalidTransition
	}

	if err := s.reservations.UpdateStatus(ctx, id, domain.ReservationCancelled); err != nil {
		return nil, err
	}
	_ = s.tables.Release(ctx, res.TableID)

	if res.SlotID != nil {
		s.releaseSlotIfIdle(ctx, *res.SlotID)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyReservationCancelled(ctx, res.CustomerID, res.ID, reason)
	}

	return s.GetReservation(ctx, id)
}

// CompleteReservation records the post-visit completion.
func (s *Service) CompleteReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !res.CanBeCompleted() {
		return nil, ErrInvalidTransition
	}

	if err := s.reservations.UpdateStatus(ctx, id, domain.ReservationCompleted); err != nil {
		return nil, err
	}
	_ = s.tables.Release(ctx, res.TableID)

	if res.SlotID != nil {
		s.releaseSlotIfIdle(ctx, *res.SlotID)
	}

	return s.GetReservation(ctx, id)
}

// ConfirmFromPayment is the pending -> confirmed transition. Only the
// payment module calls it, and only after the callback signature verified.
// A repeat for an already confirmed reservation is a no-op.
func (s *Service) ConfirmFromPayment(ctx context.Context, id int64) error {
	res, err := s.GetReservation(ctx, id)
	if err != nil {
		return err
	}
	if res.Status == domain.ReservationConfirmed {
		return nil
	}
	if res.Status != domain.ReservationPending {
		return ErrInvalidTransition
	}

	if err := s.reservations.UpdateStatus(ctx, id, domain.ReservationConfirmed); err != nil {
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyReservationConfirmed(ctx, res.CustomerID, res.ID)
	}
	return nil
}

func (s *Service) mayManage(res *domain.Reservation, actorID int64, actorRole string) bool {
	if res.CustomerID == actorID {
		return true
	}
	switch domain.UserRole(actorRole) {
	case domain.RoleStaff, domain.RoleAdmin, domain.RoleOwner:
		return true
	default:
		return false
	}
}

func (s *Service) releaseSlotIfIdle(ctx context.Context, slotID int64) {
	active, err := s.reservations.CountActiveBySlot(ctx, slotID)
	if err != nil || active > 0 {
		return
	}
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil || slot.Status != domain.SlotReserved {
		return
	}
	_ = s.slots.SetStatusWithVersion(ctx, slot.ID, slot.Version, domain.SlotAvailable)
}

func isDoubleBookingViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_double_booking"
	}
	return false
}

package slot

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type Service struct {
	slots        SlotRepository
	businesses   BusinessRepository
	priorities   PriorityRepository
	reservations ReservationReader
}

func NewService(
	slots SlotRepository,
	businesses BusinessRepository,
	priorities PriorityRepository,
	reservations ReservationReader,
) *Service {
	return &Service{
		slots:        slots,
		businesses:   businesses,
		priorities:   priorities,
		reservations: reservations,
	}
}

var slotStatuses = map[domain.SlotStatus]bool{
	domain.SlotAvailable: true,
	domain.SlotReserved:  true,
	domain.SlotOccupied:  true,
	domain.SlotCancelled: true,
}

func (s *Service) CreateSlot(ctx context.Context, req CreateSlotRequest) (*domain.Slot, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrValidation
	}
	if req.Capacity <= 0 {
		return nil, ErrValidation
	}

	status := domain.SlotStatus(req.Status)
	if req.Status == "" {
		status = domain.SlotAvailable
	} else if !slotStatuses[status] {
		return nil, ErrValidation
	}

	if _, err := s.businesses.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	prio, err := s.priorities.GetByName(ctx, req.Priority)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPriorityNotFound
		}
		return nil, err
	}

	sl := &domain.Slot{
		BusinessID: req.BusinessID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     status,
		Capacity:   req.Capacity,
		PriorityID: prio.ID,
	}
	if err := s.slots.Create(ctx, sl); err != nil {
		return nil, err
	}
	sl.Priority = prio
	return sl, nil
}

func (s *Service) GetSlot(ctx context.Context, id int64) (*domain.Slot, error) {
	sl, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if prio, perr := s.priorities.GetByID(ctx, sl.PriorityID); perr == nil {
		sl.Priority = prio
	}
	return sl, nil
}

func (s *Service) ListSlots(ctx context.Context, businessID *int64, status *domain.SlotStatus, limit, offset int) ([]domain.Slot, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.slots.List(ctx, repository.SlotFilter{
		BusinessID: businessID,
		Status:     status,
	}, limit, offset)
}

// UpdateSlot applies a partial update. Status changes go through the slot
// state machine; a priority rename must resolve to a known tier.
func (s *Service) UpdateSlot(ctx context.Context, id int64, req UpdateSlotRequest) (*domain.Slot, error) {
	if req.isEmpty() {
		return nil, ErrValidation
	}

	cur, err := s.slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := map[string]any{}

	start, end := cur.StartTime, cur.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
		fields["start_time"] = start
	}
	if req.EndTime != nil {
		end = *req.EndTime
		fields["end_time"] = end
	}
	if !end.After(start) {
		return nil, ErrValidation
	}

	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrValidation
		}
		fields["capacity"] = *req.Capacity
	}

	if req.Status != nil {
		next := domain.SlotStatus(*req.Status)
		if !slotStatuses[next] {
			return nil, ErrValidation
		}
		if !cur.Status.CanTransitionTo(next) {
			return nil, ErrInvalidTransition
		}
		fields["status"] = string(next)
	}

	if req.Priority != nil {
		prio, perr := s.priorities.GetByName(ctx, *req.Priority)
		if perr != nil {
			if errors.Is(perr, gorm.ErrRecordNotFound) {
				return nil, ErrPriorityNotFound
			}
			return nil, perr
		}
		fields["priority_id"] = prio.ID
	}

	if err := s.slots.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.GetSlot(ctx, id)
}

// DeleteSlot removes a slot, refusing while any pending or confirmed
// reservation still references it.
func (s *Service) DeleteSlot(ctx context.Context, id int64) error {
	if _, err := s.slots.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	active, err := s.reservations.HasActiveForSlot(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return ErrSlotInUse
	}

	if err := s.slots.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.businesses.List(ctx, limit, offset)
}

func (s *Service) ListPriorities(ctx context.Context) ([]domain.Priority, error) {
	return s.priorities.List(ctx)
}

func (s *Service) GetBusiness(ctx context.Context, id int64) (*domain.Business, error) {
	biz, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return biz, nil
}

// Availability generates the bookable time points for a business's
// opening hours. An empty result is how closed or misconfigured hours
// read, never an error.
func (s *Service) Availability(ctx context.Context, businessID int64, intervalMinutes int) (*AvailabilityResponse, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = 30
	}

	biz, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	return &AvailabilityResponse{
		BusinessID:      biz.ID,
		OpeningTime:     biz.OpeningTime,
		ClosingTime:     biz.ClosingTime,
		IntervalMinutes: intervalMinutes,
		Times:           GenerateTimeSlots(biz.OpeningTime, biz.ClosingTime, intervalMinutes),
	}, nil
}

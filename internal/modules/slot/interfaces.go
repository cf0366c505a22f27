package slot

import (
	"context"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

// SlotRepository defines the persistence operations the slot service needs.
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) error
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context, f repository.SlotFilter, limit, offset int) ([]domain.Slot, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	List(ctx context.Context, limit, offset int) ([]domain.Business, error)
}

type PriorityRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Priority, error)
	GetByID(ctx context.Context, id int64) (*domain.Priority, error)
	List(ctx context.Context) ([]domain.Priority, error)
}

// ReservationReader gates slot deletion on active reservations.
type ReservationReader interface {
	HasActiveForSlot(ctx context.Context, slotID int64) (bool, error)
}

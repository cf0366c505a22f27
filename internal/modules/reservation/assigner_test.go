package reservation

import (
	"errors"
	"testing"

	"tablebook/internal/domain"
)

func TestEligibleTables_FiltersBySizeAndAvailability(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Capacity: 2, Status: domain.TableAvailable},
		{ID: 2, Capacity: 4, Status: domain.TableReserved},
		{ID: 3, Capacity: 4, Status: domain.TableAvailable},
		{ID: 4, Capacity: 8, Status: domain.TableAvailable},
	}

	got, err := EligibleTables(tables, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 eligible tables, got %d", len(got))
	}
	for _, tbl := range got {
		if tbl.Capacity < 4 {
			t.Fatalf("table %d seats %d, below the party size", tbl.ID, tbl.Capacity)
		}
		if tbl.Status != domain.TableAvailable {
			t.Fatalf("table %d is not free", tbl.ID)
		}
	}
}

func TestEligibleTables_CapacityExceeded(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Capacity: 2, Status: domain.TableAvailable},
		{ID: 2, Capacity: 4, Status: domain.TableAvailable},
	}

	_, err := EligibleTables(tables, 6)

	var ne *NotEligibleError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
	if ne.Reason != ReasonCapacityExceeded {
		t.Fatalf("expected CAPACITY_EXCEEDED, got %s", ne.Reason)
	}
}

func TestEligibleTables_NoAvailability(t *testing.T) {
	tables := []domain.Table{
		{ID: 1, Capacity: 2, Status: domain.TableAvailable},
		{ID: 2, Capacity: 6, Status: domain.TableReserved},
		{ID: 3, Capacity: 8, Status: domain.TableOccupied},
	}

	_, err := EligibleTables(tables, 6)

	var ne *NotEligibleError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NotEligibleError, got %v", err)
	}
	if ne.Reason != ReasonNoAvailability {
		t.Fatalf("fitting tables exist but are taken; expected NO_AVAILABILITY, got %s", ne.Reason)
	}
}

func TestValidateChoice(t *testing.T) {
	free := &domain.Table{ID: 1, Capacity: 4, Status: domain.TableAvailable}
	if err := ValidateChoice(free, 4); err != nil {
		t.Fatalf("free fitting table should validate, got %v", err)
	}

	var ne *NotEligibleError
	if err := ValidateChoice(free, 5); !errors.As(err, &ne) || ne.Reason != ReasonCapacityExceeded {
		t.Fatalf("undersized table should fail with CAPACITY_EXCEEDED, got %v", err)
	}

	taken := &domain.Table{ID: 2, Capacity: 6, Status: domain.TableReserved}
	if err := ValidateChoice(taken, 4); !errors.As(err, &ne) || ne.Reason != ReasonNoAvailability {
		t.Fatalf("taken table should fail with NO_AVAILABILITY, got %v", err)
	}
}

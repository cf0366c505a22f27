package reservation

import "tablebook/internal/domain"

// NotEligibleReason distinguishes the two user-facing assignment failures:
// no table in the room is large enough, versus large-enough tables exist
// but none is free right now. Clients word these differently, so they must
// never be conflated.
type NotEligibleReason string

const (
	ReasonCapacityExceeded NotEligibleReason = "CAPACITY_EXCEEDED"
	ReasonNoAvailability   NotEligibleReason = "NO_AVAILABILITY"
)

type NotEligibleError struct {
	Reason NotEligibleReason
}

func (e *NotEligibleError) Error() string {
	if e.Reason == ReasonCapacityExceeded {
		return "no table can seat a party of this size"
	}
	return "no eligible table is available at the requested time"
}

// EligibleTables filters tables that can seat the party and are currently
// free. Selection among them is an explicit client choice, never an
// automatic first fit. The typed error carries the reason when the list
// comes up empty.
func EligibleTables(tables []domain.Table, partySize int) ([]domain.Table, error) {
	fitting := 0
	eligible := make([]domain.Table, 0, len(tables))
	for _, t := range tables {
		if !t.Fits(partySize) {
			continue
		}
		fitting++
		if t.IsFree() {
			eligible = append(eligible, t)
		}
	}

	if len(eligible) == 0 {
		if fitting == 0 {
			return nil, &NotEligibleError{Reason: ReasonCapacityExceeded}
		}
		return nil, &NotEligibleError{Reason: ReasonNoAvailability}
	}
	return eligible, nil
}

// ValidateChoice checks the client's explicitly chosen table against the
// party size and current availability. The optimistic commit in the
// repository is what actually locks the table; this is the pre-flight.
func ValidateChoice(t *domain.Table, partySize int) error {
	if !t.Fits(partySize) {
		return &NotEligibleError{Reason: ReasonCapacityExceeded}
	}
	if !t.IsFree() {
		return &NotEligibleError{Reason: ReasonNoAvailability}
	}
	return nil
}

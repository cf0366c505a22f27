package staff

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/domain"
)

// scriptedRequests resolves the request after a fixed number of reads.
type scriptedRequests struct {
	resolveAfter int
	finalStatus  domain.JoinRequestStatus
	reads        int
}

func (s *scriptedRequests) Create(ctx context.Context, j *domain.JoinRequest) error { return nil }

func (s *scriptedRequests) GetByID(ctx context.Context, id int64) (*domain.JoinRequest, error) {
	s.reads++
	status := domain.JoinPending
	if s.reads > s.resolveAfter {
		status = s.finalStatus
	}
	return &domain.JoinRequest{ID: id, Status: status, SupervisorUsername: "selam_owner"}, nil
}

func (s *scriptedRequests) FindPending(ctx context.Context, userID, businessID int64) (*domain.JoinRequest, error) {
	return nil, nil
}

func (s *scriptedRequests) Resolve(ctx context.Context, id int64, status domain.JoinRequestStatus) error {
	return nil
}

func (s *scriptedRequests) ListByBusiness(ctx context.Context, businessID int64) ([]domain.JoinRequest, error) {
	return nil, nil
}

func TestAwaitResolution_StopsOnApproval(t *testing.T) {
	repo := &scriptedRequests{resolveAfter: 2, finalStatus: domain.JoinApproved}
	svc := NewService(repo, nil, nil, nil)

	res, err := svc.AwaitResolution(context.Background(), 11, 5*time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TimedOut {
		t.Fatal("resolved request must not report timeout")
	}
	if res.Request.Status != domain.JoinApproved {
		t.Fatalf("expected approved, got %s", res.Request.Status)
	}
	if repo.reads != 3 {
		t.Fatalf("expected 3 reads, got %d", repo.reads)
	}
}

func TestAwaitResolution_StopsOnRejection(t *testing.T) {
	repo := &scriptedRequests{resolveAfter: 1, finalStatus: domain.JoinRejected}
	svc := NewService(repo, nil, nil, nil)

	res, err := svc.AwaitResolution(context.Background(), 11, 5*time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Request.Status != domain.JoinRejected {
		t.Fatalf("expected rejected, got %s", res.Request.Status)
	}
}

func TestAwaitResolution_TimeoutKeepsRequestPending(t *testing.T) {
	repo := &scriptedRequests{resolveAfter: 1000, finalStatus: domain.JoinApproved}
	svc := NewService(repo, nil, nil, nil)

	res, err := svc.AwaitResolution(context.Background(), 11, 5*time.Millisecond, 40*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.TimedOut {
		t.Fatal("expected timeout")
	}
	if res.Request.Status != domain.JoinPending {
		t.Fatalf("timed-out wait must return the pending state, got %s", res.Request.Status)
	}
	if res.Elapsed <= 0 {
		t.Fatal("elapsed must be recorded")
	}
}

func TestAwaitResolution_BackoffIsBounded(t *testing.T) {
	repo := &scriptedRequests{resolveAfter: 1000, finalStatus: domain.JoinApproved}
	svc := NewService(repo, nil, nil, nil)

	base := 2 * time.Millisecond
	start := time.Now()
	res, err := svc.AwaitResolution(context.Background(), 11, base, 120*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.TimedOut {
		t.Fatal("expected timeout")
	}

	// Capped backoff keeps polling: with a 2ms base and a 16ms cap the
	// 120ms window must see several reads, but far fewer than uncapped
	// fixed-interval polling would produce.
	elapsed := time.Since(start)
	if elapsed < 120*time.Millisecond {
		t.Fatalf("returned before the deadline: %v", elapsed)
	}
	if repo.reads < 4 {
		t.Fatalf("expected continued polling under backoff, got %d reads", repo.reads)
	}
	if repo.reads > 60 {
		t.Fatalf("backoff not applied, got %d reads", repo.reads)
	}
}

func TestAwaitResolution_ContextCancel(t *testing.T) {
	repo := &scriptedRequests{resolveAfter: 1000, finalStatus: domain.JoinApproved}
	svc := NewService(repo, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res, err := svc.AwaitResolution(ctx, 11, 5*time.Millisecond, 10*time.Second)
	if err == nil {
		t.Fatal("expected context error")
	}
	if res == nil || !res.TimedOut {
		t.Fatal("cancelled wait still reports the last observed state")
	}
}

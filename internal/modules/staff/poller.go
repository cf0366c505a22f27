package staff

import (
	"context"
	"time"

	"tablebook/internal/domain"
)

// PollResult carries the last observed state of a join request after a
// bounded wait. TimedOut means the request was still pending when the
// deadline hit; the request itself stays open.
type PollResult struct {
	Request  *domain.JoinRequest
	Elapsed  time.Duration
	TimedOut bool
}

// AwaitResolution polls a join request until it resolves or the timeout
// elapses. The interval doubles after each miss, capped at eight times the
// base, so a long approval does not hammer the store. A timeout never
// cancels the underlying request.
func (s *Service) AwaitResolution(ctx context.Context, id int64, interval, timeout time.Duration) (*PollResult, error) {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	start := time.Now()
	deadline := start.Add(timeout)
	wait := interval
	maxWait := 8 * interval

	for {
		j, err := s.GetJoinRequest(ctx, id)
		if err != nil {
			return nil, err
		}
		if j.IsResolved() {
			return &PollResult{Request: j, Elapsed: time.Since(start)}, nil
		}

		now := time.Now()
		if !now.Before(deadline) {
			return &PollResult{Request: j, Elapsed: time.Since(start), TimedOut: true}, nil
		}

		sleep := wait
		if remaining := deadline.Sub(now); sleep > remaining {
			sleep = remaining
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &PollResult{Request: j, Elapsed: time.Since(start), TimedOut: true}, ctx.Err()
		case <-timer.C:
		}

		wait *= 2
		if wait > maxWait {
			wait = maxWait
		}
	}
}

// Package poll implements the bounded wait on remote job state machines.
//
// Remote jobs expose no push notification; the only way to observe progress
// is to describe the job again. Wait re-queries on every iteration with
// exponential backoff between polls, honors context cancellation, and bounds
// the total wait, returning a typed outcome instead of blocking forever.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// Outcome classifies how a wait ended.
type Outcome int

const (
	// OutcomeCompleted means the job reached COMPLETED.
	OutcomeCompleted Outcome = iota
	// OutcomeStopped means the job reached STOPPED.
	OutcomeStopped
	// OutcomeFailed means the job reached FAILED; Result.FailureReason
	// carries the platform's reason string.
	OutcomeFailed
	// OutcomeTimedOut means the wait bound elapsed before any terminal
	// state was observed. The remote job keeps running.
	OutcomeTimedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeStopped:
		return "stopped"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// CheckFunc queries the current job status. It must hit the remote service
// on every call, never a cached value. The reason string is only meaningful
// for FAILED states.
type CheckFunc func(ctx context.Context) (status lattice.JobStatus, reason string, err error)

// Config holds wait tuning knobs. Zero values take defaults.
type Config struct {
	// Interval is the delay before the second poll (default: 5s). Each
	// subsequent delay doubles until MaxInterval.
	Interval time.Duration

	// MaxInterval caps the backoff (default: 60s).
	MaxInterval time.Duration

	// Timeout bounds the whole wait (default: 2h). The wait returns
	// OutcomeTimedOut when it elapses; the remote job is not stopped.
	Timeout time.Duration

	// MaxConsecutiveErrors aborts the wait after this many check failures
	// in a row (default: 5). Transient errors below the threshold are
	// retried with the same backoff schedule.
	MaxConsecutiveErrors int

	// OnPoll, if set, is called after every successful status query.
	OnPoll func(status lattice.JobStatus, elapsed time.Duration)
}

// Result describes how a wait ended.
type Result struct {
	Outcome       Outcome
	Status        lattice.JobStatus
	FailureReason string
	Polls         int
	Elapsed       time.Duration
}

func (cfg *Config) withDefaults() Config {
	out := *cfg
	if out.Interval <= 0 {
		out.Interval = 5 * time.Second
	}
	if out.MaxInterval <= 0 {
		out.MaxInterval = 60 * time.Second
	}
	if out.MaxInterval < out.Interval {
		out.MaxInterval = out.Interval
	}
	if out.Timeout <= 0 {
		out.Timeout = 2 * time.Hour
	}
	if out.MaxConsecutiveErrors <= 0 {
		out.MaxConsecutiveErrors = 5
	}
	return out
}

// Wait polls check until a terminal status is observed, the timeout elapses,
// or the context is cancelled. Cancellation returns ctx.Err(); persistent
// check failures return the last error. All other endings are reported in
// the Result, including failure of the remote job itself.
func Wait(ctx context.Context, check CheckFunc, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	start := time.Now()
	deadline := start.Add(cfg.Timeout)
	interval := cfg.Interval
	var res Result
	consecutiveErrors := 0

	for {
		status, reason, err := check(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			consecutiveErrors++
			if consecutiveErrors >= cfg.MaxConsecutiveErrors {
				return res, fmt.Errorf("status check failed %d times in a row: %w", consecutiveErrors, err)
			}
		} else {
			consecutiveErrors = 0
			res.Polls++
			res.Status = status
			res.Elapsed = time.Since(start)
			if cfg.OnPoll != nil {
				cfg.OnPoll(status, res.Elapsed)
			}

			switch status {
			case lattice.JobStatusCompleted:
				res.Outcome = OutcomeCompleted
				return res, nil
			case lattice.JobStatusStopped:
				res.Outcome = OutcomeStopped
				return res, nil
			case lattice.JobStatusFailed:
				res.Outcome = OutcomeFailed
				res.FailureReason = reason
				return res, nil
			}
		}

		if time.Now().Add(interval).After(deadline) {
			res.Outcome = OutcomeTimedOut
			res.Elapsed = time.Since(start)
			return res, nil
		}

		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-time.After(interval):
		}

		interval *= 2
		if interval > cfg.MaxInterval {
			interval = cfg.MaxInterval
		}
	}
}

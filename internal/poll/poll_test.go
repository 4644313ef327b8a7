package poll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// scriptedCheck returns a CheckFunc that replays the given statuses in
// order, sticking on the last one.
func scriptedCheck(statuses []lattice.JobStatus, reason string) (CheckFunc, *int) {
	calls := 0
	return func(ctx context.Context) (lattice.JobStatus, string, error) {
		i := calls
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		calls++
		s := statuses[i]
		if s == lattice.JobStatusFailed {
			return s, reason, nil
		}
		return s, "", nil
	}, &calls
}

func fastConfig() Config {
	return Config{
		Interval:    time.Millisecond,
		MaxInterval: 4 * time.Millisecond,
		Timeout:     time.Second,
	}
}

func TestWaitCompletesOnFirstTerminalStatus(t *testing.T) {
	check, calls := scriptedCheck([]lattice.JobStatus{
		lattice.JobStatusInProgress,
		lattice.JobStatusInProgress,
		lattice.JobStatusCompleted,
	}, "")

	res, err := Wait(context.Background(), check, fastConfig())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Outcome != OutcomeCompleted {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeCompleted)
	}
	if res.Polls != 3 {
		t.Errorf("Polls = %d, want 3", res.Polls)
	}
	// Every iteration must re-query; no caching of a non-terminal status.
	if *calls != 3 {
		t.Errorf("check called %d times, want 3", *calls)
	}
}

func TestWaitStopped(t *testing.T) {
	check, _ := scriptedCheck([]lattice.JobStatus{
		lattice.JobStatusPending,
		lattice.JobStatusStopped,
	}, "")

	res, err := Wait(context.Background(), check, fastConfig())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Outcome != OutcomeStopped {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeStopped)
	}
}

func TestWaitFailedCarriesReason(t *testing.T) {
	check, _ := scriptedCheck([]lattice.JobStatus{
		lattice.JobStatusInProgress,
		lattice.JobStatusFailed,
	}, "ModelLoadFailed: container exited with status 1")

	res, err := Wait(context.Background(), check, fastConfig())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Outcome != OutcomeFailed {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeFailed)
	}
	if res.FailureReason == "" {
		t.Error("FailureReason is empty, want platform reason string")
	}
}

func TestWaitTimesOut(t *testing.T) {
	check, _ := scriptedCheck([]lattice.JobStatus{lattice.JobStatusInProgress}, "")

	cfg := fastConfig()
	cfg.Timeout = 10 * time.Millisecond
	res, err := Wait(context.Background(), check, cfg)
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Outcome != OutcomeTimedOut {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeTimedOut)
	}
}

func TestWaitCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	check := CheckFunc(func(ctx context.Context) (lattice.JobStatus, string, error) {
		cancel()
		return lattice.JobStatusInProgress, "", nil
	})

	_, err := Wait(ctx, check, fastConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait error = %v, want context.Canceled", err)
	}
}

func TestWaitRetriesTransientErrors(t *testing.T) {
	calls := 0
	check := CheckFunc(func(ctx context.Context) (lattice.JobStatus, string, error) {
		calls++
		if calls < 3 {
			return "", "", errors.New("connection reset")
		}
		return lattice.JobStatusCompleted, "", nil
	})

	res, err := Wait(context.Background(), check, fastConfig())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if res.Outcome != OutcomeCompleted {
		t.Errorf("Outcome = %v, want %v", res.Outcome, OutcomeCompleted)
	}
	if calls != 3 {
		t.Errorf("check called %d times, want 3", calls)
	}
}

func TestWaitAbortsOnPersistentErrors(t *testing.T) {
	check := CheckFunc(func(ctx context.Context) (lattice.JobStatus, string, error) {
		return "", "", errors.New("boom")
	})

	cfg := fastConfig()
	cfg.MaxConsecutiveErrors = 3
	_, err := Wait(context.Background(), check, cfg)
	if err == nil {
		t.Fatal("Wait returned nil error, want persistent-failure error")
	}
}

func TestWaitBackoffIsCapped(t *testing.T) {
	cfg := Config{}
	got := cfg.withDefaults()
	if got.Interval != 5*time.Second {
		t.Errorf("default Interval = %v, want 5s", got.Interval)
	}
	if got.MaxInterval != 60*time.Second {
		t.Errorf("default MaxInterval = %v, want 60s", got.MaxInterval)
	}
	if got.Timeout != 2*time.Hour {
		t.Errorf("default Timeout = %v, want 2h", got.Timeout)
	}

	cfg = Config{Interval: time.Minute, MaxInterval: time.Second}
	got = cfg.withDefaults()
	if got.MaxInterval != time.Minute {
		t.Errorf("MaxInterval = %v, want raised to Interval", got.MaxInterval)
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeCompleted: "completed",
		OutcomeStopped:   "stopped",
		OutcomeFailed:    "failed",
		OutcomeTimedOut:  "timed out",
	}
	for o, want := range cases {
		if o.String() != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), o.String(), want)
		}
	}
}

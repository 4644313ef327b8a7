// cmd/helpers.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lattice-ml/lattice-cli/internal/config"
	"github.com/lattice-ml/lattice-cli/internal/handles"
	"github.com/lattice-ml/lattice-cli/internal/lattice"
	"github.com/lattice-ml/lattice-cli/internal/poll"
	"github.com/lattice-ml/lattice-cli/internal/ui"
)

// loadConfig resolves the effective configuration: defaults, then the config
// file, then environment, then the --control-plane flag.
func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if controlPlaneURL != "" {
		cfg.ControlPlane = controlPlaneURL
	}
	return cfg, nil
}

// newClient builds the control-plane client from the effective configuration.
func newClient() (*lattice.Client, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	client := lattice.NewClient(lattice.ClientConfig{
		BaseURL:   cfg.ControlPlane,
		Token:     cfg.Token,
		DebugFunc: Debug,
	})
	return client, cfg, nil
}

// openHandleStore opens the local job-handle database, creating it on first
// use. Callers must Close it.
func openHandleStore() (*handles.Store, error) {
	path, err := handles.DefaultPath()
	if err != nil {
		return nil, err
	}
	return handles.Open(path)
}

// recordHandle persists a job handle locally. Failures are reported but never
// fail the command: the job is already running on the platform.
func recordHandle(r handles.Record) {
	store, err := openHandleStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Could not open local job store: %v\n", err)
		return
	}
	defer store.Close()
	if err := store.Insert(r); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Could not record job handle: %v\n", err)
	}
}

// updateHandle records a terminal status for a previously stored handle.
// Best effort, same as recordHandle.
func updateHandle(name, status, detail string) {
	store, err := openHandleStore()
	if err != nil {
		return
	}
	defer store.Close()
	if err := store.UpdateStatus(name, status, detail); err != nil {
		Debug("update handle %s: %v", name, err)
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so long waits
// can be interrupted cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// waitForJob polls check until the job reaches a terminal state, rendering a
// spinner with the live status. The caller decides what to do with the
// outcome; waitForJob only reports it.
func waitForJob(ctx context.Context, cfg config.Config, label string, check poll.CheckFunc) (poll.Result, error) {
	spinner := ui.NewSpinner()
	spinner.Start(label)

	result, err := poll.Wait(ctx, check, poll.Config{
		Interval: cfg.PollInterval.Std(),
		Timeout:  cfg.WaitTimeout.Std(),
		OnPoll: func(status lattice.JobStatus, elapsed time.Duration) {
			spinner.UpdateDetail(string(status))
		},
	})
	if err != nil {
		spinner.Fail(fmt.Sprintf("%s: %v", label, err))
		return result, err
	}

	elapsed := result.Elapsed.Round(time.Second)
	switch result.Outcome {
	case poll.OutcomeCompleted:
		spinner.Success(fmt.Sprintf("%s: completed after %s", label, elapsed))
	case poll.OutcomeStopped:
		spinner.Warning(fmt.Sprintf("%s: stopped", label))
	case poll.OutcomeFailed:
		spinner.Fail(fmt.Sprintf("%s: failed: %s", label, result.FailureReason))
	case poll.OutcomeTimedOut:
		spinner.Warning(fmt.Sprintf("%s: still running after %s, giving up the wait", label, elapsed))
	}
	return result, nil
}

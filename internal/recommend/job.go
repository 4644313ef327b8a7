// Package recommend builds instance-recommendation jobs and aggregates
// their results. Job execution — load generation, benchmarking, instance
// selection — happens entirely in the remote platform; this package only
// assembles valid requests and flattens what comes back.
package recommend

import (
	"errors"
	"fmt"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// DefaultJob builds a Default (automatic) recommendation job request. The
// platform picks candidate instance types itself from the package's
// registered list.
func DefaultJob(name, packageID, role string) lattice.CreateRecommendationJobRequest {
	return lattice.CreateRecommendationJobRequest{
		Name: name,
		Type: lattice.RecommendationJobDefault,
		Role: role,
		Input: lattice.RecommendationInput{
			PackageID: packageID,
		},
	}
}

// AdvancedConfig collects the knobs of a custom load-test job.
type AdvancedConfig struct {
	Name               string
	PackageID          string
	Role               string
	Description        string
	JobDurationSeconds int
	Candidates         []lattice.EndpointCandidate
	Traffic            []lattice.TrafficPhase
	MaxInvocations     int
	P99LatencyMs       int
	MaxTests           int
	MaxParallelTests   int
}

// AdvancedJob validates cfg and builds an Advanced recommendation job
// request. Validation failures are reported before anything reaches the
// control plane.
func AdvancedJob(cfg AdvancedConfig) (lattice.CreateRecommendationJobRequest, error) {
	var req lattice.CreateRecommendationJobRequest

	if cfg.Name == "" {
		return req, errors.New("job name is required")
	}
	if cfg.PackageID == "" {
		return req, errors.New("model package ID is required")
	}
	if cfg.Role == "" {
		return req, errors.New("execution role is required")
	}
	if len(cfg.Candidates) == 0 {
		return req, errors.New("advanced jobs need at least one endpoint candidate")
	}
	for i, c := range cfg.Candidates {
		if c.InstanceType == "" {
			return req, fmt.Errorf("candidate %d: instance type is required", i)
		}
		for _, env := range c.Environment {
			if env.Name == "" || len(env.Values) == 0 {
				return req, fmt.Errorf("candidate %d: environment sweep needs a name and at least one value", i)
			}
		}
	}
	if len(cfg.Traffic) == 0 {
		return req, errors.New("advanced jobs need at least one traffic phase")
	}
	for i, p := range cfg.Traffic {
		if p.DurationSeconds <= 0 {
			return req, fmt.Errorf("traffic phase %d: duration must be positive", i)
		}
		if p.SpawnRate <= 0 {
			return req, fmt.Errorf("traffic phase %d: spawn rate must be positive", i)
		}
	}
	if cfg.MaxParallelTests > cfg.MaxTests && cfg.MaxTests > 0 {
		return req, errors.New("max parallel tests cannot exceed max tests")
	}

	req = lattice.CreateRecommendationJobRequest{
		Name:        cfg.Name,
		Description: cfg.Description,
		Type:        lattice.RecommendationJobAdvanced,
		Role:        cfg.Role,
		Input: lattice.RecommendationInput{
			PackageID:          cfg.PackageID,
			JobDurationSeconds: cfg.JobDurationSeconds,
			Candidates:         cfg.Candidates,
			Traffic:            cfg.Traffic,
		},
	}

	if cfg.MaxTests > 0 || cfg.MaxParallelTests > 0 {
		req.Input.ResourceLimit = &lattice.ResourceLimit{
			MaxTests:         cfg.MaxTests,
			MaxParallelTests: cfg.MaxParallelTests,
		}
	}

	stopping := lattice.StoppingConditions{MaxInvocations: cfg.MaxInvocations}
	if cfg.P99LatencyMs > 0 {
		stopping.LatencyThresholds = []lattice.LatencyThreshold{
			{Percentile: "P99", ValueMs: cfg.P99LatencyMs},
		}
	}
	if stopping.MaxInvocations > 0 || len(stopping.LatencyThresholds) > 0 {
		req.Stopping = &stopping
	}

	return req, nil
}

// Package training builds and validates training and hyperparameter-tuning
// job requests. The search strategy and trial scheduling live in the remote
// platform; locally declared limits (max jobs, parallelism) are the only
// concurrency controls.
package training

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// Hyperparameters flattens typed values into the string map the training
// container receives as command-line arguments. Keys come out sorted only
// in error messages; the map itself is order-free.
func Hyperparameters(values map[string]any) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		switch n := v.(type) {
		case string:
			out[k] = n
		case bool:
			out[k] = strconv.FormatBool(n)
		case int:
			out[k] = strconv.Itoa(n)
		case int64:
			out[k] = strconv.FormatInt(n, 10)
		case float64:
			out[k] = strconv.FormatFloat(n, 'g', -1, 64)
		default:
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}

// ValidateJob checks a training job request before submission.
func ValidateJob(req lattice.CreateTrainingJobRequest) error {
	if req.Name == "" {
		return errors.New("job name is required")
	}
	if req.Role == "" {
		return errors.New("execution role is required")
	}
	if req.Algorithm.Image == "" {
		return errors.New("algorithm image is required")
	}
	if req.Algorithm.InputMode != "" && req.Algorithm.InputMode != "File" && req.Algorithm.InputMode != "Pipe" {
		return fmt.Errorf("input mode %q is not File or Pipe", req.Algorithm.InputMode)
	}
	if err := validateMetricDefinitions(req.Algorithm.MetricDefinitions); err != nil {
		return err
	}
	if len(req.Channels) == 0 {
		return errors.New("at least one input channel is required")
	}
	for i, ch := range req.Channels {
		if ch.Name == "" || ch.DataURI == "" {
			return fmt.Errorf("channel %d: name and data URI are required", i)
		}
	}
	if req.OutputURI == "" {
		return errors.New("output URI is required")
	}
	if req.Resources.InstanceType == "" {
		return errors.New("instance type is required")
	}
	if req.Resources.InstanceCount <= 0 {
		return errors.New("instance count must be positive")
	}
	if req.Stopping.MaxRuntimeSeconds <= 0 {
		return errors.New("max runtime must be positive")
	}
	return nil
}

// validateMetricDefinitions ensures every log-scrape regex compiles and has
// a capture group for the value. The regex contract is imposed by the
// platform's log-based metric extraction.
func validateMetricDefinitions(defs []lattice.MetricDefinition) error {
	for _, d := range defs {
		if d.Name == "" {
			return errors.New("metric definition without a name")
		}
		re, err := regexp.Compile(d.Regex)
		if err != nil {
			return fmt.Errorf("metric %q: regex does not compile: %w", d.Name, err)
		}
		if re.NumSubexp() < 1 {
			return fmt.Errorf("metric %q: regex needs a capture group for the value", d.Name)
		}
	}
	return nil
}

// ValidateTuning checks a tuning sweep request before submission.
func ValidateTuning(req lattice.CreateTuningJobRequest) error {
	if req.Name == "" {
		return errors.New("job name is required")
	}
	if len(req.Ranges.Integer) == 0 && len(req.Ranges.Categorical) == 0 {
		return errors.New("at least one parameter range is required")
	}

	names := map[string]bool{}
	for _, r := range req.Ranges.Integer {
		if r.Name == "" {
			return errors.New("integer range without a name")
		}
		if r.Min >= r.Max {
			return fmt.Errorf("range %q: min %d is not below max %d", r.Name, r.Min, r.Max)
		}
		if names[r.Name] {
			return fmt.Errorf("parameter %q declared twice", r.Name)
		}
		names[r.Name] = true
	}
	for _, r := range req.Ranges.Categorical {
		if r.Name == "" {
			return errors.New("categorical range without a name")
		}
		if len(r.Values) == 0 {
			return fmt.Errorf("range %q: no values", r.Name)
		}
		if names[r.Name] {
			return fmt.Errorf("parameter %q declared twice", r.Name)
		}
		names[r.Name] = true
	}

	// Swept parameters must not also be pinned statically.
	var conflicts []string
	for name := range req.Definition.StaticHyperparameters {
		if names[name] {
			conflicts = append(conflicts, name)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return fmt.Errorf("parameters both swept and static: %v", conflicts)
	}

	if req.Objective.Name == "" {
		return errors.New("objective metric name is required")
	}
	if req.Objective.Goal != "Maximize" && req.Objective.Goal != "Minimize" {
		return fmt.Errorf("objective goal %q is not Maximize or Minimize", req.Objective.Goal)
	}
	if err := validateMetricDefinitions([]lattice.MetricDefinition{
		{Name: req.Objective.Name, Regex: req.Objective.Regex},
	}); err != nil {
		return err
	}

	if req.MaxJobs <= 0 {
		return errors.New("max jobs must be positive")
	}
	if req.MaxParallelJobs <= 0 {
		return errors.New("max parallel jobs must be positive")
	}
	if req.MaxParallelJobs > req.MaxJobs {
		return errors.New("max parallel jobs cannot exceed max jobs")
	}

	if req.Definition.Algorithm.Image == "" {
		return errors.New("trial definition: algorithm image is required")
	}
	if req.Definition.Role == "" {
		return errors.New("trial definition: execution role is required")
	}
	if len(req.Definition.Channels) == 0 {
		return errors.New("trial definition: at least one input channel is required")
	}
	if req.Definition.OutputURI == "" {
		return errors.New("trial definition: output URI is required")
	}
	if req.Definition.Resources.InstanceType == "" || req.Definition.Resources.InstanceCount <= 0 {
		return errors.New("trial definition: resource config is incomplete")
	}
	if req.Definition.Stopping.MaxRuntimeSeconds <= 0 {
		return errors.New("trial definition: max runtime must be positive")
	}

	return nil
}

package training

import (
	"strings"
	"testing"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

func validTrainingJob() lattice.CreateTrainingJobRequest {
	return lattice.CreateTrainingJobRequest{
		Name: "rf-scikit-train",
		Hyperparameters: map[string]string{
			"n-estimators":     "100",
			"min-samples-leaf": "3",
		},
		Algorithm: lattice.AlgorithmSpec{
			Image:     "registry.lattice-ml.dev/sklearn:1.2-cpu",
			InputMode: "File",
			MetricDefinitions: []lattice.MetricDefinition{
				{Name: "median-AE", Regex: `AE-at-50th-percentile: ([0-9.]+)`},
			},
		},
		Role: "role/lattice-jobs",
		Channels: []lattice.Channel{
			{Name: "train", DataURI: "store://bucket/data/train.csv", ContentType: "text/csv"},
			{Name: "test", DataURI: "store://bucket/data/test.csv", ContentType: "text/csv"},
		},
		OutputURI: "store://bucket/output",
		Resources: lattice.ResourceConfig{
			InstanceType:  "std.m5.xlarge",
			InstanceCount: 1,
			VolumeSizeGB:  30,
		},
		Stopping: lattice.StoppingCondition{MaxRuntimeSeconds: 86400},
	}
}

func validTuningJob() lattice.CreateTuningJobRequest {
	tj := validTrainingJob()
	return lattice.CreateTuningJobRequest{
		Name: "rf-scikit-tune",
		Ranges: lattice.ParameterRanges{
			Integer: []lattice.IntegerRange{
				{Name: "n-estimators", Min: 20, Max: 100},
				{Name: "min-samples-leaf", Min: 2, Max: 6},
			},
		},
		Objective: lattice.ObjectiveMetric{
			Name:  "median-AE",
			Regex: `AE-at-50th-percentile: ([0-9.]+)`,
			Goal:  "Minimize",
		},
		MaxJobs:         10,
		MaxParallelJobs: 3,
		Definition: lattice.TrainingJobDefinition{
			Algorithm: tj.Algorithm,
			Role:      tj.Role,
			Channels:  tj.Channels,
			OutputURI: tj.OutputURI,
			Resources: tj.Resources,
			Stopping:  tj.Stopping,
		},
	}
}

func TestHyperparameters(t *testing.T) {
	got := Hyperparameters(map[string]any{
		"n-estimators": 100,
		"rate":         0.05,
		"shuffle":      true,
		"target":       "price",
	})

	want := map[string]string{
		"n-estimators": "100",
		"rate":         "0.05",
		"shuffle":      "true",
		"target":       "price",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Hyperparameters[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidateJobAccepts(t *testing.T) {
	if err := ValidateJob(validTrainingJob()); err != nil {
		t.Fatalf("ValidateJob returned error for valid request: %v", err)
	}
}

func TestValidateJobRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*lattice.CreateTrainingJobRequest)
		wantErr string
	}{
		{"missing name", func(r *lattice.CreateTrainingJobRequest) { r.Name = "" }, "name"},
		{"missing role", func(r *lattice.CreateTrainingJobRequest) { r.Role = "" }, "role"},
		{"missing image", func(r *lattice.CreateTrainingJobRequest) { r.Algorithm.Image = "" }, "image"},
		{"bad input mode", func(r *lattice.CreateTrainingJobRequest) { r.Algorithm.InputMode = "Stream" }, "input mode"},
		{"no channels", func(r *lattice.CreateTrainingJobRequest) { r.Channels = nil }, "channel"},
		{"no output", func(r *lattice.CreateTrainingJobRequest) { r.OutputURI = "" }, "output"},
		{"zero instances", func(r *lattice.CreateTrainingJobRequest) { r.Resources.InstanceCount = 0 }, "instance count"},
		{"no runtime bound", func(r *lattice.CreateTrainingJobRequest) { r.Stopping.MaxRuntimeSeconds = 0 }, "runtime"},
		{"broken metric regex", func(r *lattice.CreateTrainingJobRequest) {
			r.Algorithm.MetricDefinitions[0].Regex = "(["
		}, "compile"},
		{"regex without capture", func(r *lattice.CreateTrainingJobRequest) {
			r.Algorithm.MetricDefinitions[0].Regex = "loss: [0-9.]+"
		}, "capture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTrainingJob()
			tt.mutate(&req)
			err := ValidateJob(req)
			if err == nil {
				t.Fatal("ValidateJob returned nil error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTuningAccepts(t *testing.T) {
	if err := ValidateTuning(validTuningJob()); err != nil {
		t.Fatalf("ValidateTuning returned error for valid request: %v", err)
	}
}

func TestValidateTuningRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*lattice.CreateTuningJobRequest)
		wantErr string
	}{
		{"no ranges", func(r *lattice.CreateTuningJobRequest) { r.Ranges = lattice.ParameterRanges{} }, "range"},
		{"inverted range", func(r *lattice.CreateTuningJobRequest) { r.Ranges.Integer[0].Min = 200 }, "below"},
		{"duplicate parameter", func(r *lattice.CreateTuningJobRequest) {
			r.Ranges.Categorical = []lattice.CategoricalRange{{Name: "n-estimators", Values: []string{"a"}}}
		}, "twice"},
		{"swept and static", func(r *lattice.CreateTuningJobRequest) {
			r.Definition.StaticHyperparameters = map[string]string{"n-estimators": "50"}
		}, "static"},
		{"bad goal", func(r *lattice.CreateTuningJobRequest) { r.Objective.Goal = "Optimize" }, "Maximize"},
		{"parallel exceeds max", func(r *lattice.CreateTuningJobRequest) { r.MaxParallelJobs = 50 }, "parallel"},
		{"zero max jobs", func(r *lattice.CreateTuningJobRequest) { r.MaxJobs = 0; r.MaxParallelJobs = 0 }, "max jobs"},
		{"objective regex broken", func(r *lattice.CreateTuningJobRequest) { r.Objective.Regex = "([" }, "compile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTuningJob()
			tt.mutate(&req)
			err := ValidateTuning(req)
			if err == nil {
				t.Fatal("ValidateTuning returned nil error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

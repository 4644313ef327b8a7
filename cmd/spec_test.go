// cmd/spec_test.go
package cmd

import (
	"testing"

	"github.com/lattice-ml/lattice-cli/internal/training"
	"gopkg.in/yaml.v3"
)

const sampleAdvancedSpec = `
description: sklearn random forest load test
job_duration_seconds: 7200
candidates:
  - instance_type: std.c5.xlarge
    environment:
      - name: OMP_NUM_THREADS
        values: ["2", "4"]
  - instance_type: std.c5.2xlarge
traffic:
  - initial_users: 1
    spawn_rate: 1
    duration_seconds: 120
  - initial_users: 1
    spawn_rate: 2
    duration_seconds: 120
max_invocations: 30000
p99_latency_ms: 100
max_tests: 10
max_parallel_tests: 3
`

func TestAdvancedSpecToConfig(t *testing.T) {
	var spec advancedSpec
	if err := yaml.Unmarshal([]byte(sampleAdvancedSpec), &spec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	cfg := spec.toConfig("bench-1", "pkg-1", "role/jobs")

	if cfg.Name != "bench-1" || cfg.PackageID != "pkg-1" || cfg.Role != "role/jobs" {
		t.Errorf("identity fields = %q/%q/%q", cfg.Name, cfg.PackageID, cfg.Role)
	}
	if len(cfg.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(cfg.Candidates))
	}
	env := cfg.Candidates[0].Environment
	if len(env) != 1 || env[0].Name != "OMP_NUM_THREADS" || len(env[0].Values) != 2 {
		t.Errorf("environment sweep = %+v", env)
	}
	if len(cfg.Traffic) != 2 || cfg.Traffic[1].SpawnRate != 2 {
		t.Errorf("traffic = %+v", cfg.Traffic)
	}
	if cfg.P99LatencyMs != 100 || cfg.MaxInvocations != 30000 {
		t.Errorf("stopping = p99 %d, invocations %d", cfg.P99LatencyMs, cfg.MaxInvocations)
	}
}

const sampleTrainingSpec = `
name_prefix: rf-housing
role: role/jobs
hyperparameters:
  n-estimators: 100
  min-samples-leaf: 3
algorithm:
  image: registry.lattice-ml.dev/sklearn-train:1.2
  input_mode: File
  metric_definitions:
    - name: "median-AE"
      regex: "AE-at-50th-percentile: ([0-9.]+)"
channels:
  - name: train
    data_uri: store://bucket/datasets/train.csv
    content_type: text/csv
  - name: test
    data_uri: store://bucket/datasets/test.csv
    content_type: text/csv
output_uri: store://bucket/output/
resources:
  instance_type: std.m5.large
  instance_count: 1
  volume_size_gb: 25
max_runtime_seconds: 3600
`

func TestTrainingSpecToRequest(t *testing.T) {
	var spec trainingSpec
	if err := yaml.Unmarshal([]byte(sampleTrainingSpec), &spec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	req := spec.toRequest("rf-housing-20260830-abc123", spec.Role)

	// Numeric hyperparameters must arrive stringified.
	if got := req.Hyperparameters["n-estimators"]; got != "100" {
		t.Errorf("n-estimators = %q, want \"100\"", got)
	}
	if len(req.Channels) != 2 || req.Channels[0].Name != "train" {
		t.Errorf("channels = %+v", req.Channels)
	}
	if len(req.Algorithm.MetricDefinitions) != 1 {
		t.Fatalf("metric definitions = %d, want 1", len(req.Algorithm.MetricDefinitions))
	}
	if req.Stopping.MaxRuntimeSeconds != 3600 {
		t.Errorf("max runtime = %d", req.Stopping.MaxRuntimeSeconds)
	}

	if err := training.ValidateJob(req); err != nil {
		t.Errorf("ValidateJob rejected the sample spec: %v", err)
	}
}

const sampleTuningSpec = `
name_prefix: rf-sweep
role: role/jobs
ranges:
  integer:
    - name: n-estimators
      min: 50
      max: 400
  categorical:
    - name: criterion
      values: ["squared_error", "absolute_error"]
objective:
  name: "median-AE"
  regex: "AE-at-50th-percentile: ([0-9.]+)"
  goal: Minimize
max_jobs: 12
max_parallel_jobs: 3
definition:
  hyperparameters:
    min-samples-leaf: 3
  algorithm:
    image: registry.lattice-ml.dev/sklearn-train:1.2
    input_mode: File
  channels:
    - name: train
      data_uri: store://bucket/datasets/train.csv
  output_uri: store://bucket/output/
  resources:
    instance_type: std.m5.large
    instance_count: 1
    volume_size_gb: 25
  max_runtime_seconds: 3600
`

func TestTuningSpecToRequest(t *testing.T) {
	var spec tuningSpec
	if err := yaml.Unmarshal([]byte(sampleTuningSpec), &spec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	spec.Definition.Role = spec.Role

	req := spec.toRequest("rf-sweep-20260830-def456", spec.Role)

	if len(req.Ranges.Integer) != 1 || req.Ranges.Integer[0].Max != 400 {
		t.Errorf("integer ranges = %+v", req.Ranges.Integer)
	}
	if len(req.Ranges.Categorical) != 1 || len(req.Ranges.Categorical[0].Values) != 2 {
		t.Errorf("categorical ranges = %+v", req.Ranges.Categorical)
	}
	if req.Objective.Goal != "Minimize" {
		t.Errorf("goal = %q", req.Objective.Goal)
	}
	if req.Definition.StaticHyperparameters["min-samples-leaf"] != "3" {
		t.Errorf("static hyperparameters = %+v", req.Definition.StaticHyperparameters)
	}

	if err := training.ValidateTuning(req); err != nil {
		t.Errorf("ValidateTuning rejected the sample spec: %v", err)
	}
}

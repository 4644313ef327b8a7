package recommend

import (
	"strings"
	"testing"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

func validAdvancedConfig() AdvancedConfig {
	return AdvancedConfig{
		Name:               "resnet50-advanced",
		PackageID:          "pkg-resnet50-v1",
		Role:               "role/lattice-jobs",
		JobDurationSeconds: 7200,
		Candidates: []lattice.EndpointCandidate{
			{
				InstanceType: "std.c5.xlarge",
				Environment: []lattice.EnvironmentRange{
					{Name: "OMP_NUM_THREADS", Values: []string{"2", "4"}},
				},
			},
		},
		Traffic: []lattice.TrafficPhase{
			{InitialUsers: 1, SpawnRate: 1, DurationSeconds: 120},
		},
		MaxInvocations:   500,
		P99LatencyMs:     100,
		MaxTests:         10,
		MaxParallelTests: 3,
	}
}

func TestDefaultJob(t *testing.T) {
	req := DefaultJob("my-job", "pkg-1", "role/x")
	if req.Type != lattice.RecommendationJobDefault {
		t.Errorf("Type = %q, want Default", req.Type)
	}
	if req.Input.PackageID != "pkg-1" {
		t.Errorf("PackageID = %q, want pkg-1", req.Input.PackageID)
	}
	if req.Stopping != nil || req.Input.ResourceLimit != nil {
		t.Error("Default job carries advanced-only configuration")
	}
}

func TestAdvancedJobValid(t *testing.T) {
	req, err := AdvancedJob(validAdvancedConfig())
	if err != nil {
		t.Fatalf("AdvancedJob returned error: %v", err)
	}
	if req.Type != lattice.RecommendationJobAdvanced {
		t.Errorf("Type = %q, want Advanced", req.Type)
	}
	if req.Stopping == nil || req.Stopping.MaxInvocations != 500 {
		t.Errorf("Stopping = %+v, want MaxInvocations 500", req.Stopping)
	}
	if len(req.Stopping.LatencyThresholds) != 1 || req.Stopping.LatencyThresholds[0].Percentile != "P99" {
		t.Errorf("LatencyThresholds = %+v, want single P99 entry", req.Stopping.LatencyThresholds)
	}
	if req.Input.ResourceLimit == nil || req.Input.ResourceLimit.MaxParallelTests != 3 {
		t.Errorf("ResourceLimit = %+v, want MaxParallelTests 3", req.Input.ResourceLimit)
	}
}

func TestAdvancedJobValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AdvancedConfig)
		wantErr string
	}{
		{"missing name", func(c *AdvancedConfig) { c.Name = "" }, "name"},
		{"missing package", func(c *AdvancedConfig) { c.PackageID = "" }, "package"},
		{"missing role", func(c *AdvancedConfig) { c.Role = "" }, "role"},
		{"no candidates", func(c *AdvancedConfig) { c.Candidates = nil }, "candidate"},
		{"no traffic", func(c *AdvancedConfig) { c.Traffic = nil }, "traffic"},
		{"zero-duration phase", func(c *AdvancedConfig) { c.Traffic[0].DurationSeconds = 0 }, "duration"},
		{"parallel exceeds total", func(c *AdvancedConfig) { c.MaxParallelTests = 20 }, "parallel"},
		{"candidate without instance type", func(c *AdvancedConfig) { c.Candidates[0].InstanceType = "" }, "instance type"},
		{"empty env sweep", func(c *AdvancedConfig) { c.Candidates[0].Environment[0].Values = nil }, "environment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAdvancedConfig()
			tt.mutate(&cfg)
			_, err := AdvancedJob(cfg)
			if err == nil {
				t.Fatal("AdvancedJob returned nil error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

package jobname

import (
	"regexp"
	"strings"
	"testing"
)

func TestJobNameUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name := JobName("resnet50-instance")
		if seen[name] {
			t.Fatalf("duplicate name generated: %s", name)
		}
		seen[name] = true
	}
}

func TestJobNameFormat(t *testing.T) {
	name := JobName("ResNet50 Benchmark")
	if !strings.HasPrefix(name, "resnet50-benchmark-") {
		t.Errorf("name = %q, want sanitized lowercase prefix", name)
	}
	if len(name) > 63 {
		t.Errorf("name length = %d, want <= 63", len(name))
	}
	valid := regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	if !valid.MatchString(name) {
		t.Errorf("name %q contains characters the control plane rejects", name)
	}
}

func TestJobNameLongPrefixTruncated(t *testing.T) {
	name := JobName(strings.Repeat("verylongprefix", 10))
	if len(name) > 63 {
		t.Errorf("name length = %d, want <= 63", len(name))
	}
}

func TestJobNameEmptyPrefix(t *testing.T) {
	name := JobName("")
	if !strings.HasPrefix(name, "job-") {
		t.Errorf("name = %q, want fallback prefix", name)
	}
}

func TestSanitizePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ResNet50", "resnet50"},
		{"my model/v2", "my-model-v2"},
		{"--weird__name--", "weird-name"},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := sanitizePrefix(tt.in); got != tt.want {
			t.Errorf("sanitizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package endpoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

func TestSmokeInvokesCountTimes(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/api/v1/endpoints/rf-ep/invocations" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != ContentTypeCSV {
			t.Errorf("Content-Type = %q, want %q", ct, ContentTypeCSV)
		}
		w.Write([]byte("21.5\n"))
	}))
	defer server.Close()

	client := lattice.NewClient(lattice.ClientConfig{BaseURL: server.URL, Token: "tok"})
	res, err := Smoke(context.Background(), client, SmokeConfig{
		EndpointName: "rf-ep",
		ContentType:  ContentTypeCSV,
		Payload:      EncodeCSV([][]float64{{1, 2, 3}}),
		Count:        5,
	})
	if err != nil {
		t.Fatalf("Smoke returned error: %v", err)
	}
	if calls.Load() != 5 {
		t.Errorf("server saw %d invocations, want 5", calls.Load())
	}
	if res.Errors != 0 {
		t.Errorf("Errors = %d, want 0", res.Errors)
	}
	if string(res.LastResponse) != "21.5\n" {
		t.Errorf("LastResponse = %q", res.LastResponse)
	}
	if res.MinLatency <= 0 || res.MaxLatency < res.MinLatency {
		t.Errorf("latency stats inconsistent: min=%v max=%v", res.MinLatency, res.MaxLatency)
	}
}

func TestSmokeCountsErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"code": "ModelError", "message": "container crashed"}`))
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := lattice.NewClient(lattice.ClientConfig{BaseURL: server.URL, Token: "tok"})
	res, err := Smoke(context.Background(), client, SmokeConfig{
		EndpointName: "rf-ep",
		ContentType:  ContentTypeCSV,
		Payload:      []byte("1,2\n"),
		Count:        3,
	})
	if err != nil {
		t.Fatalf("Smoke returned error: %v", err)
	}
	if res.Errors != 1 {
		t.Errorf("Errors = %d, want 1", res.Errors)
	}
	if res.FirstError == nil {
		t.Error("FirstError is nil")
	}
	if res.Count != 3 {
		t.Errorf("Count = %d, want 3", res.Count)
	}
}

func TestPercentileNearestRank(t *testing.T) {
	sorted := []time.Duration{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	if got := percentile(sorted, 0.50); got != 50 {
		t.Errorf("p50 = %v, want 50", got)
	}
	if got := percentile(sorted, 0.99); got != 100 {
		t.Errorf("p99 = %v, want 100", got)
	}
	if got := percentile(sorted[:1], 0.99); got != 10 {
		t.Errorf("single-sample p99 = %v, want 10", got)
	}
	if got := percentile(nil, 0.5); got != 0 {
		t.Errorf("empty percentile = %v, want 0", got)
	}
}

package endpoint

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// SmokeConfig drives a short client-side invocation run against a live
// endpoint. This is a sanity check, not a benchmark; real load testing is a
// platform recommendation job.
type SmokeConfig struct {
	EndpointName string
	ContentType  string
	Accept       string
	Payload      []byte

	// Count is the number of invocations (default: 1).
	Count int

	// RPS rate-limits the run (default: unlimited).
	RPS float64
}

// SmokeResult summarizes a smoke run.
type SmokeResult struct {
	Count        int
	Errors       int
	FirstError   error
	MinLatency   time.Duration
	MaxLatency   time.Duration
	MeanLatency  time.Duration
	P50Latency   time.Duration
	P99Latency   time.Duration
	LastResponse []byte
}

// Smoke invokes the endpoint cfg.Count times under the configured rate
// limit and collects latency statistics. Individual invocation failures are
// counted, not fatal; the run only aborts on context cancellation.
func Smoke(ctx context.Context, client *lattice.Client, cfg SmokeConfig) (*SmokeResult, error) {
	if cfg.EndpointName == "" {
		return nil, fmt.Errorf("endpoint name is required")
	}
	if cfg.Count <= 0 {
		cfg.Count = 1
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}

	res := &SmokeResult{}
	latencies := make([]time.Duration, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return res, err
		}

		start := time.Now()
		body, err := client.InvokeEndpoint(ctx, cfg.EndpointName, cfg.ContentType, cfg.Accept, cfg.Payload)
		elapsed := time.Since(start)

		res.Count++
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Errors++
			if res.FirstError == nil {
				res.FirstError = err
			}
			continue
		}
		res.LastResponse = body
		latencies = append(latencies, elapsed)
	}

	summarize(res, latencies)
	return res, nil
}

func summarize(res *SmokeResult, latencies []time.Duration) {
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var total time.Duration
	for _, l := range latencies {
		total += l
	}
	res.MinLatency = latencies[0]
	res.MaxLatency = latencies[len(latencies)-1]
	res.MeanLatency = total / time.Duration(len(latencies))
	res.P50Latency = percentile(latencies, 0.50)
	res.P99Latency = percentile(latencies, 0.99)
}

// percentile returns the nearest-rank percentile of sorted durations.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p*float64(len(sorted))+0.5) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

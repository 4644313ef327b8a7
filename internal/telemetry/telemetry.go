// Package telemetry pulls per-endpoint metric series for a recommendation
// job's execution window and merges them into a tabular view. The metrics
// backend is remote; nothing is aggregated beyond keying samples by
// timestamp and endpoint.
package telemetry

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

// DefaultMetrics is the fixed metric set fetched per endpoint.
var DefaultMetrics = []string{
	"ModelLatency",
	"CPUUtilization",
	"MemoryUtilization",
	"OverheadLatency",
}

// Row is one merged sample: all metric values observed for one endpoint at
// one timestamp. Missing samples leave no key in Values.
type Row struct {
	Timestamp time.Time
	Endpoint  string
	Values    map[string]float64
}

// Fetcher queries job telemetry from the control plane's metrics backend.
type Fetcher struct {
	client *lattice.Client

	// Period is the sample period requested (default: 60s).
	Period time.Duration
}

// NewFetcher creates a telemetry fetcher.
func NewFetcher(client *lattice.Client) *Fetcher {
	return &Fetcher{client: client, Period: time.Minute}
}

// JobSeries fetches a job's telemetry and merges it into rows keyed by
// (timestamp, endpoint).
func (f *Fetcher) JobSeries(ctx context.Context, jobName string) ([]Row, error) {
	series, err := f.RawJobSeries(ctx, jobName)
	if err != nil {
		return nil, err
	}
	if series == nil {
		return nil, nil
	}
	return Merge(series), nil
}

// RawJobSeries derives the endpoints a recommendation job provisioned and
// fetches DefaultMetrics for each over the job's execution window. Calling
// this on a non-terminal job yields partial or empty series; that is a
// valid result, not an error.
func (f *Fetcher) RawJobSeries(ctx context.Context, jobName string) ([]lattice.MetricSeries, error) {
	job, err := f.client.DescribeRecommendationJob(ctx, jobName)
	if err != nil {
		return nil, err
	}
	if len(job.Endpoints) == 0 {
		return nil, nil
	}

	end := time.Now().UTC()
	if job.CompletedAt != nil {
		end = *job.CompletedAt
	}

	var all []lattice.MetricSeries
	for _, ep := range job.Endpoints {
		series, err := f.client.QueryMetrics(ctx, lattice.MetricQuery{
			EndpointName:  ep.EndpointName,
			MetricNames:   DefaultMetrics,
			StartTime:     job.CreatedAt,
			EndTime:       end,
			PeriodSeconds: int(f.Period.Seconds()),
		})
		if err != nil {
			return nil, fmt.Errorf("telemetry for endpoint %q: %w", ep.EndpointName, err)
		}
		all = append(all, series...)
	}

	return all, nil
}

// Merge flattens metric series into rows keyed by (timestamp, endpoint),
// sorted by timestamp then endpoint name.
func Merge(series []lattice.MetricSeries) []Row {
	type key struct {
		ts       int64
		endpoint string
	}
	merged := map[key]*Row{}

	for _, s := range series {
		for _, p := range s.Points {
			k := key{ts: p.Timestamp.Unix(), endpoint: s.Endpoint}
			row, ok := merged[k]
			if !ok {
				row = &Row{
					Timestamp: p.Timestamp.UTC(),
					Endpoint:  s.Endpoint,
					Values:    map[string]float64{},
				}
				merged[k] = row
			}
			row.Values[s.Metric] = p.Value
		}
	}

	rows := make([]Row, 0, len(merged))
	for _, r := range merged {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Timestamp.Equal(rows[j].Timestamp) {
			return rows[i].Timestamp.Before(rows[j].Timestamp)
		}
		return rows[i].Endpoint < rows[j].Endpoint
	})
	return rows
}

package lattice

import (
	"context"
	"fmt"
	"net/http"
)

// QueryMetrics fetches time series from the platform metrics backend for one
// endpoint over a window. Querying a window with no data returns empty
// series, not an error.
func (c *Client) QueryMetrics(ctx context.Context, q MetricQuery) ([]MetricSeries, error) {
	var resp struct {
		Series []MetricSeries `json:"series"`
	}
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/metrics/query", q, &resp); err != nil {
		return nil, fmt.Errorf("query metrics for endpoint %q: %w", q.EndpointName, err)
	}
	return resp.Series, nil
}

// GetVersionInfo fetches the CLI version metadata the control plane advertises.
func (c *Client) GetVersionInfo(ctx context.Context) (*VersionInfo, error) {
	var info VersionInfo
	if err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/cli/version", nil, &info); err != nil {
		return nil, fmt.Errorf("fetch version info: %w", err)
	}
	return &info, nil
}

package lattice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateRecommendationJob submits an instance-recommendation job. The call
// is fire-and-forget: it returns once the control plane has accepted the
// job; execution and benchmarking happen entirely remotely.
func (c *Client) CreateRecommendationJob(ctx context.Context, req CreateRecommendationJobRequest) (*RecommendationJob, error) {
	var job RecommendationJob
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/recommendations", req, &job); err != nil {
		return nil, fmt.Errorf("create recommendation job %q: %w", req.Name, err)
	}
	return &job, nil
}

// DescribeRecommendationJob fetches the current state of a job. Status must
// be re-queried to observe transitions; there is no push notification.
func (c *Client) DescribeRecommendationJob(ctx context.Context, name string) (*RecommendationJob, error) {
	var job RecommendationJob
	path := apiPrefix + "/recommendations/" + url.PathEscape(name)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, fmt.Errorf("describe recommendation job %q: %w", name, err)
	}
	return &job, nil
}

// StopRecommendationJob asks the control plane to stop a running job. The
// job moves to STOPPED asynchronously; callers observe the transition by
// polling.
func (c *Client) StopRecommendationJob(ctx context.Context, name string) error {
	path := apiPrefix + "/recommendations/" + url.PathEscape(name) + "/stop"
	if err := c.doRequest(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("stop recommendation job %q: %w", name, err)
	}
	return nil
}

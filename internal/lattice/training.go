package lattice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateTrainingJob submits a training job and returns its accepted state.
func (c *Client) CreateTrainingJob(ctx context.Context, req CreateTrainingJobRequest) (*TrainingJob, error) {
	var job TrainingJob
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/training-jobs", req, &job); err != nil {
		return nil, fmt.Errorf("create training job %q: %w", req.Name, err)
	}
	return &job, nil
}

// DescribeTrainingJob fetches the current state of a training job.
func (c *Client) DescribeTrainingJob(ctx context.Context, name string) (*TrainingJob, error) {
	var job TrainingJob
	path := apiPrefix + "/training-jobs/" + url.PathEscape(name)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, fmt.Errorf("describe training job %q: %w", name, err)
	}
	return &job, nil
}

// StopTrainingJob requests the stop of a running training job.
func (c *Client) StopTrainingJob(ctx context.Context, name string) error {
	path := apiPrefix + "/training-jobs/" + url.PathEscape(name) + "/stop"
	if err := c.doRequest(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("stop training job %q: %w", name, err)
	}
	return nil
}

// CreateTuningJob submits a hyperparameter tuning sweep.
func (c *Client) CreateTuningJob(ctx context.Context, req CreateTuningJobRequest) (*TuningJob, error) {
	var job TuningJob
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/tuning-jobs", req, &job); err != nil {
		return nil, fmt.Errorf("create tuning job %q: %w", req.Name, err)
	}
	return &job, nil
}

// DescribeTuningJob fetches the current state of a tuning job, including
// the best trial found so far.
func (c *Client) DescribeTuningJob(ctx context.Context, name string) (*TuningJob, error) {
	var job TuningJob
	path := apiPrefix + "/tuning-jobs/" + url.PathEscape(name)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, fmt.Errorf("describe tuning job %q: %w", name, err)
	}
	return &job, nil
}

// StopTuningJob requests the stop of a running tuning sweep and all of its
// in-flight trials.
func (c *Client) StopTuningJob(ctx context.Context, name string) error {
	path := apiPrefix + "/tuning-jobs/" + url.PathEscape(name) + "/stop"
	if err := c.doRequest(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("stop tuning job %q: %w", name, err)
	}
	return nil
}

package lattice

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateModel registers a servable model reference from a trained artifact.
func (c *Client) CreateModel(ctx context.Context, req CreateModelRequest) (*Model, error) {
	var model Model
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/models", req, &model); err != nil {
		return nil, fmt.Errorf("create model %q: %w", req.Name, err)
	}
	return &model, nil
}

// CreateEndpoint provisions a real-time serving endpoint for a model. The
// endpoint bills from the moment it is accepted until DeleteEndpoint is
// called; there is no automatic teardown.
func (c *Client) CreateEndpoint(ctx context.Context, req CreateEndpointRequest) (*Endpoint, error) {
	var ep Endpoint
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/endpoints", req, &ep); err != nil {
		return nil, fmt.Errorf("create endpoint %q: %w", req.Name, err)
	}
	return &ep, nil
}

// DescribeEndpoint fetches the current state of an endpoint.
func (c *Client) DescribeEndpoint(ctx context.Context, name string) (*Endpoint, error) {
	var ep Endpoint
	path := apiPrefix + "/endpoints/" + url.PathEscape(name)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &ep); err != nil {
		return nil, fmt.Errorf("describe endpoint %q: %w", name, err)
	}
	return &ep, nil
}

// DeleteEndpoint tears down a serving endpoint.
func (c *Client) DeleteEndpoint(ctx context.Context, name string) error {
	path := apiPrefix + "/endpoints/" + url.PathEscape(name)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete endpoint %q: %w", name, err)
	}
	return nil
}

// InvokeEndpoint sends a request body to a live endpoint and returns the raw
// response bytes. The payload encoding is declared via contentType; accept
// may be empty to take the container's default response type.
func (c *Client) InvokeEndpoint(ctx context.Context, name, contentType, accept string, payload []byte) ([]byte, error) {
	path := apiPrefix + "/endpoints/" + url.PathEscape(name) + "/invocations"
	resp, err := c.doRaw(ctx, http.MethodPost, path, contentType, accept, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("invoke endpoint %q: %w", name, err)
	}
	return resp, nil
}

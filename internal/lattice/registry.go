package lattice

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateModelGroup creates a named grouping for model package versions.
// Group names are unique; re-creating an existing name fails with a
// conflict error (see IsConflict).
func (c *Client) CreateModelGroup(ctx context.Context, req CreateModelGroupRequest) (*ModelGroup, error) {
	var group ModelGroup
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/registry/groups", req, &group); err != nil {
		return nil, fmt.Errorf("create model group %q: %w", req.Name, err)
	}
	return &group, nil
}

// CreateModelPackage registers a new model version under an existing group
// and returns its opaque package identifier. Packages are immutable once
// created.
func (c *Client) CreateModelPackage(ctx context.Context, req CreateModelPackageRequest) (*ModelPackage, error) {
	var pkg ModelPackage
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/registry/packages", req, &pkg); err != nil {
		return nil, fmt.Errorf("create model package in group %q: %w", req.GroupName, err)
	}
	return &pkg, nil
}

// DescribeModelPackage fetches one registered package by ID.
func (c *Client) DescribeModelPackage(ctx context.Context, id string) (*ModelPackage, error) {
	var pkg ModelPackage
	path := apiPrefix + "/registry/packages/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &pkg); err != nil {
		return nil, fmt.Errorf("describe model package %q: %w", id, err)
	}
	return &pkg, nil
}

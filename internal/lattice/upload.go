package lattice

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// PresignUpload asks the control plane for a one-shot upload URL for an
// artifact. The returned StorageURI is the durable location downstream
// registry and training calls reference.
func (c *Client) PresignUpload(ctx context.Context, req PresignUploadRequest) (*PresignUploadResponse, error) {
	var resp PresignUploadResponse
	if err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/uploads/presign", req, &resp); err != nil {
		return nil, fmt.Errorf("presign upload for key %q: %w", req.Key, err)
	}
	return &resp, nil
}

// PutObject streams body to a presigned upload URL. The URL embeds its own
// credentials, so no Authorization header is sent.
func (c *Client) PutObject(ctx context.Context, uploadURL, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.ContentLength = size
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

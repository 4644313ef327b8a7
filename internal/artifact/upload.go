package artifact

import (
	"context"
	"fmt"
	"os"

	"github.com/lattice-ml/lattice-cli/internal/lattice"
)

const archiveContentType = "application/gzip"

// Upload pushes a local archive to platform object storage under key and
// returns the durable storage URI. The control plane issues a one-shot
// presigned URL; the archive bytes go straight to object storage.
func Upload(ctx context.Context, client *lattice.Client, localPath, key string) (string, error) {
	stat, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("stat archive: %w", err)
	}
	digest, err := FileSHA256(localPath)
	if err != nil {
		return "", err
	}

	presigned, err := client.PresignUpload(ctx, lattice.PresignUploadRequest{
		Key:         key,
		ContentType: archiveContentType,
		SHA256:      digest,
		SizeBytes:   stat.Size(),
	})
	if err != nil {
		return "", err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	if err := client.PutObject(ctx, presigned.UploadURL, archiveContentType, f, stat.Size()); err != nil {
		return "", fmt.Errorf("upload %q: %w", key, err)
	}

	return presigned.StorageURI, nil
}

// Package storage abstracts image blob persistence. Implementations handle
// the local filesystem (served statically) or an S3 bucket exposed at a
// public URL. The product service treats both uniformly — switching backends
// is configuration only.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// BlobStore stores and removes image blobs.
type BlobStore interface {
	// Put persists the blob under a generated unique key and returns the
	// locator stored verbatim in the imagen column (relative path for the
	// local driver, absolute URL for S3).
	Put(ctx context.Context, data []byte, contentType string) (locator string, err error)

	// Delete removes the blob identified by a locator previously returned
	// by Put.
	Delete(ctx context.Context, locator string) error
}

// prefix is the namespace all product images live under.
const prefix = "productos"

var extByType = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
}

// newKey generates a unique object key like productos/<uuid>.jpg.
func newKey(contentType string) (string, error) {
	ext, ok := extByType[contentType]
	if !ok {
		return "", fmt.Errorf("storage: unsupported content type %q", contentType)
	}
	return fmt.Sprintf("%s/%s.%s", prefix, uuid.NewString(), ext), nil
}

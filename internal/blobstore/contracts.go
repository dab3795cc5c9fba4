package blobstore

import "context"

// Client stores and retrieves opaque binary documents by handle.
// Upload is synchronous and non-resumable: it either fully succeeds
// and returns the handle plus a retrieval URL, or fails.
type Client interface {
	Upload(ctx context.Context, data []byte, name string) (handle string, url string, err error)
	Download(ctx context.Context, handle string) ([]byte, error)
}

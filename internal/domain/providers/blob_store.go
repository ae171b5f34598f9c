package providers

import "context"

// BlobStore is the external image storage collaborator. Upload returns a
// publicly resolvable URL for the stored bytes. Delete is best-effort and
// used only to clean up orphans when a submission aborts midway.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

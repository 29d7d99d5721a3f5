package ports

import (
	"context"
	"io"
)

// FileUpload carries one inbound multipart file from the transport layer.
// Content is buffered so uploads can fan out concurrently.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// UploadedMedia is the record of a stored object returned by the media
// collaborator.
type UploadedMedia struct {
	URL          string
	PublicID     string
	ResourceType string
}

// MediaStorage is the external object-storage collaborator. Upload stores a
// blob under publicID and returns its public URL; Delete removes a batch of
// previously stored objects.
type MediaStorage interface {
	Upload(ctx context.Context, publicID, contentType string, body io.Reader, size int64) (*UploadedMedia, error)
	Delete(ctx context.Context, publicIDs []string) error
}

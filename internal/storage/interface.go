package storage

import (
	"context"
	"errors"
	"io"
)

var ErrInvalidImage = errors.New("invalid image payload")

// ImageStore defines the interface for image storage backends.
// Supports both local filesystem and Cloudinary.
type ImageStore interface {
	// UploadBase64 stores a base64 data-URI image under the given folder and
	// returns the publicly reachable URL of the stored image.
	UploadBase64(ctx context.Context, dataURI string, folder string) (string, error)

	// ReadFile opens a stored image for reading (used by the local backend's
	// HTTP handler; the Cloudinary backend does not serve files itself).
	ReadFile(key string) (io.ReadCloser, error)
}

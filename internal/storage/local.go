package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore implements image storage on the local filesystem.
// This is for development and testing without a Cloudinary account.
type LocalStore struct {
	baseURL   string // Server URL (e.g., "http://localhost:8080")
	uploadDir string // Local directory for uploads (e.g., "./uploads")
}

func NewLocalStore(baseURL, uploadDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		baseURL:   strings.TrimRight(baseURL, "/"),
		uploadDir: uploadDir,
	}, nil
}

func (s *LocalStore) UploadBase64(ctx context.Context, dataURI string, folder string) (string, error) {
	data, ext, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := filepath.Join(folder, uuid.New().String()+ext)
	fullPath := filepath.Join(s.uploadDir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create folder: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return fmt.Sprintf("%s/api/uploads/%s", s.baseURL, filepath.ToSlash(key)), nil
}

func (s *LocalStore) ReadFile(key string) (io.ReadCloser, error) {
	// Reject traversal outside the upload directory.
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return nil, ErrInvalidImage
	}
	file, err := os.Open(filepath.Join(s.uploadDir, cleaned))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// decodeDataURI splits a "data:image/<type>;base64,<payload>" URI into raw
// bytes and a file extension. Bare base64 payloads are accepted as JPEG.
func decodeDataURI(dataURI string) ([]byte, string, error) {
	payload := dataURI
	ext := ".jpg"

	if strings.HasPrefix(dataURI, "data:") {
		header, rest, found := strings.Cut(dataURI, ",")
		if !found {
			return nil, "", ErrInvalidImage
		}
		payload = rest

		mediaType := strings.TrimPrefix(header, "data:")
		mediaType, _, _ = strings.Cut(mediaType, ";")
		switch mediaType {
		case "image/jpeg", "image/jpg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			return nil, "", ErrInvalidImage
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	if len(data) == 0 {
		return nil, "", ErrInvalidImage
	}
	return data, ext, nil
}

package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kayakbay-backend/internal/config"
	"kayakbay-backend/internal/logger"
)

// CloudinaryStore implements image storage against the Cloudinary upload API
// using signed uploads. Cloudinary accepts data URIs directly as the file
// parameter, so no intermediate decode is needed.
type CloudinaryStore struct {
	cloudName  string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

func NewCloudinaryStore(cfg config.CloudinaryConfig) *CloudinaryStore {
	return &CloudinaryStore{
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *CloudinaryStore) UploadBase64(ctx context.Context, dataURI string, folder string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		dataURI = "data:image/jpeg;base64," + dataURI
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	form := url.Values{}
	form.Set("file", dataURI)
	form.Set("folder", folder)
	form.Set("timestamp", timestamp)
	form.Set("api_key", s.apiKey)
	form.Set("signature", s.sign(map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	}))

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	logger.ExternalServiceCall("cloudinary", "UploadBase64", "folder", folder)
	resp, err := s.httpClient.Do(req)
	logger.ExternalServiceResult("cloudinary", "UploadBase64", err, "folder", folder)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	defer resp.Body.Close()

	var body cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode cloudinary response: %w", err)
	}
	if body.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload rejected: %s", body.Error.Message)
	}
	return body.SecureURL, nil
}

// ReadFile is not supported: Cloudinary serves images from its own CDN.
func (s *CloudinaryStore) ReadFile(key string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("cloudinary storage does not serve files locally")
}

// sign produces the Cloudinary request signature: the sorted key=value pairs
// joined with '&', with the API secret appended, hashed with SHA-1.
func (s *CloudinaryStore) sign(params map[string]string) string {
	pairs := make([]string, 0, len(params))
	for _, k := range []string{"folder", "timestamp"} {
		if v, ok := params[k]; ok {
			pairs = append(pairs, k+"="+v)
		}
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}

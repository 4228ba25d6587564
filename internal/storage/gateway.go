package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rewear-be/internal/logger"

	"go.uber.org/zap"
)

// Bucket names as provisioned on the storage project.
const (
	BucketProductPhotos  = "product-photos"
	BucketDonationPhotos = "donation-photos"
	BucketProfilePhotos  = "photo-profile"
)

// Gateway wraps the Supabase Storage object API: upload a binary and get
// its public URL back, delete by filename. Nothing else.
type Gateway interface {
	Upload(ctx context.Context, bucket, fileName string, data []byte, contentType string, upsert bool) (string, error)
	Remove(ctx context.Context, bucket, fileName string) error
	PublicURL(bucket, fileName string) string
}

type supabaseGateway struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewSupabaseGateway(baseURL, serviceKey string) Gateway {
	if serviceKey == "" {
		logger.L().Warn("Supabase service key is empty")
	}

	return &supabaseGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- Upload -----------------

func (g *supabaseGateway) Upload(
	ctx context.Context,
	bucket, fileName string,
	data []byte,
	contentType string,
	upsert bool,
) (string, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("bucket", bucket),
		zap.String("file", fileName),
		zap.Int("size", len(data)),
	)

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		g.baseURL, bucket, url.PathEscape(fileName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		log.Error("failed creating upload request", zap.Error(err))
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+g.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "3600")
	if upsert {
		req.Header.Set("x-upsert", "true")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("upload request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.Error("upload rejected by storage",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return "", fmt.Errorf("storage upload failed (%d): %s", resp.StatusCode, storageErrorMessage(body))
	}

	publicURL := g.PublicURL(bucket, fileName)
	log.Debug("file uploaded", zap.String("public_url", publicURL))

	return publicURL, nil
}

// ----------------- Remove -----------------

func (g *supabaseGateway) Remove(ctx context.Context, bucket, fileName string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		g.baseURL, bucket, url.PathEscape(fileName))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.serviceKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage delete failed (%d): %s", resp.StatusCode, storageErrorMessage(body))
	}

	return nil
}

// PublicURL derives the public object URL; buckets are public-read.
func (g *supabaseGateway) PublicURL(bucket, fileName string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		g.baseURL, bucket, url.PathEscape(fileName))
}

// FileNameFromURL recovers the stored object name from a public URL, for
// compensating deletes that only have the URL at hand.
func FileNameFromURL(publicURL string) string {
	idx := strings.LastIndex(publicURL, "/")
	if idx < 0 {
		return publicURL
	}
	name, err := url.PathUnescape(publicURL[idx+1:])
	if err != nil {
		return publicURL[idx+1:]
	}
	return name
}

func storageErrorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return string(body)
}

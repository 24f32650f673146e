package storage

import (
	"fmt"
)

// NewCloudflareR2Storage builds an S3-compatible client for Cloudflare R2.
// R2 speaks the S3 API, it just needs a fixed "auto" region and an account
// endpoint.
func NewCloudflareR2Storage(cfg Config) (*S3Storage, error) {
	// Endpoint format: https://<account_id>.r2.cloudflarestorage.com
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required for Cloudflare R2")
	}

	cfg.Region = "auto"
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("https://%s.r2.dev", cfg.Bucket)
	}

	return NewS3Storage(cfg)
}

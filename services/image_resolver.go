package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Image URL modes.
const (
	ImageURLModePublic  = "public"
	ImageURLModePresign = "presign"
)

// ObjectPresigner signs GET URLs for private objects.
type ObjectPresigner interface {
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// ImageResolverConfig describes where catalog images live.
type ImageResolverConfig struct {
	Bucket    string
	Endpoint  string
	CDNDomain string
	Mode      string
	Expiry    time.Duration
}

// S3ImageResolver maps object keys to CDN, presigned or plain S3 URLs.
type S3ImageResolver struct {
	cfg       ImageResolverConfig
	presigner ObjectPresigner
	logger    *zap.Logger
}

func NewS3ImageResolver(cfg ImageResolverConfig, presigner ObjectPresigner, logger *zap.Logger) *S3ImageResolver {
	if logger == nil {
		logger = zap.L()
	}
	return &S3ImageResolver{cfg: cfg, presigner: presigner, logger: logger}
}

func (r *S3ImageResolver) Resolve(ctx context.Context, key string) *string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return &key
	}
	key = strings.TrimLeft(key, "/")

	if r.cfg.CDNDomain != "" {
		u := fmt.Sprintf("https://%s/%s", strings.TrimRight(r.cfg.CDNDomain, "/"), key)
		return &u
	}
	if r.cfg.Bucket == "" {
		return nil
	}
	if r.cfg.Mode == ImageURLModePresign && r.presigner != nil {
		u, err := r.presigner.PresignGet(ctx, r.cfg.Bucket, key, r.cfg.Expiry)
		if err == nil {
			return &u
		}
		r.logger.Warn("Failed to presign image URL, using public URL", zap.String("key", key), zap.Error(err))
	}

	var u string
	if r.cfg.Endpoint != "" {
		u = fmt.Sprintf("%s/%s/%s", strings.TrimRight(r.cfg.Endpoint, "/"), r.cfg.Bucket, key)
	} else {
		u = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", r.cfg.Bucket, key)
	}
	return &u
}

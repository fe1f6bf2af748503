package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	awspkg "variant-export-service/pkg/aws"
	"variant-export-service/services"

	"go.uber.org/zap"
)

const serviceName = "variant-export-service"

// Session backends.
const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Config holds all environment variables for the variant-export-service.
type Config struct {
	Port           string
	Env            string
	RedisURL       string
	SessionBackend string

	AWS          awspkg.Options
	S3Endpoint   string
	CatalogTable string

	S3Bucket         string
	CloudFrontDomain string
	ImageURLMode     string
	ImageURLExpiry   time.Duration

	ExportTopicARN string

	RateLimitPerMinute int
	AllowedOrigins     []string

	CloudWatchEnabled bool
	CloudWatchGroup   string
	MetricsEnabled    bool
	MetricsNamespace  string

	UseSecrets bool
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// LoadConfig loads environment variables into Config struct and validates them.
// If AWS_USE_SECRETS=true the Redis URL is read from Secrets Manager, falling
// back to the env value on failure.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	if cfg.UseSecrets {
		if awsCfg, err := awspkg.LoadAWSConfig(ctx, cfg.AWS); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)
			if url, err := sm.GetSecretField(ctx, "export/REDIS_URL", "REDIS_URL"); err == nil && url != "" {
				cfg.RedisURL = url
			} else if err != nil {
				zap.L().Warn("Failed to read REDIS_URL secret, using env value", zap.Error(err))
			}
		} else {
			zap.L().Warn("Failed to load AWS config for secrets", zap.Error(err))
		}
	}

	return cfg, nil
}

func loadConfigFromEnv() (*Config, error) {
	awsEndpoint := os.Getenv("AWS_ENDPOINT")
	cfg := &Config{
		Port:           getEnv("PORT", "8090"),
		Env:            getEnv("APP_ENV", "development"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionBackend: strings.ToLower(getEnv("SESSION_BACKEND", SessionBackendRedis)),
		AWS: awspkg.Options{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			Endpoint:        awsEndpoint,
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		S3Endpoint:        getEnv("AWS_S3_ENDPOINT", awsEndpoint),
		CatalogTable:      getEnv("DDB_TABLE_CATALOG", "Catalog"),
		S3Bucket:          os.Getenv("AWS_S3_BUCKET"),
		CloudFrontDomain:  os.Getenv("AWS_CLOUDFRONT_DOMAIN"),
		ImageURLMode:      strings.ToLower(getEnv("IMAGE_URL_MODE", services.ImageURLModePublic)),
		ExportTopicARN:    os.Getenv("EXPORT_SNS_TOPIC_ARN"),
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
		CloudWatchEnabled: getEnvBool("CLOUDWATCH_ENABLED"),
		CloudWatchGroup:   getEnv("CLOUDWATCH_LOG_GROUP", "/variant-export/services"),
		MetricsEnabled:    getEnvBool("CLOUDWATCH_METRICS_ENABLED"),
		MetricsNamespace:  getEnv("CLOUDWATCH_METRICS_NAMESPACE", "VariantExport"),
		UseSecrets:        getEnvBool("AWS_USE_SECRETS"),
	}

	expiry, err := getEnvInt("IMAGE_URL_EXPIRY_SECONDS", 3600)
	if err != nil {
		return nil, err
	}
	cfg.ImageURLExpiry = time.Duration(expiry) * time.Second

	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 120); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SessionBackend {
	case SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionBackendRedis, SessionBackendMemory, c.SessionBackend)
	}
	switch c.ImageURLMode {
	case services.ImageURLModePublic, services.ImageURLModePresign:
	default:
		return fmt.Errorf("IMAGE_URL_MODE must be %q or %q, got %q", services.ImageURLModePublic, services.ImageURLModePresign, c.ImageURLMode)
	}
	if c.ImageURLExpiry <= 0 {
		return fmt.Errorf("IMAGE_URL_EXPIRY_SECONDS must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

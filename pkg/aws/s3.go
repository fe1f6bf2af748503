package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client creates an S3 client. Path-style addressing is forced when a
// custom endpoint is used, since LocalStack does not serve virtual hosts.
func NewS3Client(cfg sdkaws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = sdkaws.String(endpoint)
		}
	})
}

// ObjectPresigner signs time-limited GET URLs for private objects.
type ObjectPresigner struct {
	presigner *s3.PresignClient
}

func NewObjectPresigner(client *s3.Client) *ObjectPresigner {
	return &ObjectPresigner{presigner: s3.NewPresignClient(client)}
}

// PresignGet returns a GET URL for bucket/key valid for expiry.
func (p *ObjectPresigner) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: sdkaws.String(bucket),
		Key:    sdkaws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}
	return req.URL, nil
}

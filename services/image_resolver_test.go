package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePresigner struct {
	calls  int
	expiry time.Duration
	err    error
}

func (f *fakePresigner) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.calls++
	f.expiry = expiry
	if f.err != nil {
		return "", f.err
	}
	return "https://" + bucket + ".signed/" + key + "?X-Amz-Signature=abc", nil
}

func resolve(t *testing.T, r *S3ImageResolver, key string) string {
	t.Helper()
	u := r.Resolve(context.Background(), key)
	require.NotNil(t, u)
	return *u
}

func TestS3ImageResolver_Order(t *testing.T) {
	presigner := &fakePresigner{}

	abs := NewS3ImageResolver(ImageResolverConfig{Bucket: "b", CDNDomain: "cdn.test"}, presigner, zap.NewNop())
	assert.Equal(t, "http://shop.test/a.jpg", resolve(t, abs, "http://shop.test/a.jpg"))
	assert.Equal(t, "https://cdn.test/img/a.jpg", resolve(t, abs, "/img/a.jpg"))

	signed := NewS3ImageResolver(ImageResolverConfig{Bucket: "b", Mode: ImageURLModePresign, Expiry: time.Hour}, presigner, zap.NewNop())
	assert.Equal(t, "https://b.signed/a.jpg?X-Amz-Signature=abc", resolve(t, signed, "a.jpg"))
	assert.Equal(t, time.Hour, presigner.expiry)

	local := NewS3ImageResolver(ImageResolverConfig{Bucket: "b", Endpoint: "http://localhost:4566/"}, nil, zap.NewNop())
	assert.Equal(t, "http://localhost:4566/b/a.jpg", resolve(t, local, "a.jpg"))

	plain := NewS3ImageResolver(ImageResolverConfig{Bucket: "b"}, nil, zap.NewNop())
	assert.Equal(t, "https://b.s3.amazonaws.com/a.jpg", resolve(t, plain, "a.jpg"))
}

func TestS3ImageResolver_PresignFailureFallsBack(t *testing.T) {
	presigner := &fakePresigner{err: errors.New("no creds")}
	r := NewS3ImageResolver(ImageResolverConfig{Bucket: "b", Mode: ImageURLModePresign}, presigner, zap.NewNop())

	assert.Equal(t, "https://b.s3.amazonaws.com/a.jpg", resolve(t, r, "a.jpg"))
	assert.Equal(t, 1, presigner.calls)
}

func TestS3ImageResolver_NoImage(t *testing.T) {
	r := NewS3ImageResolver(ImageResolverConfig{Bucket: "b"}, nil, nil)
	assert.Nil(t, r.Resolve(context.Background(), "  "))

	noBucket := NewS3ImageResolver(ImageResolverConfig{}, nil, nil)
	assert.Nil(t, noBucket.Resolve(context.Background(), "a.jpg"))
}

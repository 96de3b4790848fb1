// Package remotebackend implements the raw byte backends the encrypted
// remote archive writes through.
package remotebackend

import (
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
)

type B2 struct {
	bucket *b2.Bucket
}

func NewB2(ctx context.Context, b2id, b2key, bucketName string) (*B2, error) {
	client, err := b2.NewClient(ctx, b2id, b2key)
	if err != nil {
		return nil, fmt.Errorf("creating b2 client: %w", err)
	}
	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("opening bucket %s: %w", bucketName, err)
	}
	return &B2{bucket: bucket}, nil
}

func (b *B2) NewReader(ctx context.Context, fileName string) (io.ReadCloser, error) {
	return b.bucket.Object(fileName).NewReader(ctx), nil
}

func (b *B2) NewWriter(ctx context.Context, fileName string) io.WriteCloser {
	return b.bucket.Object(fileName).NewWriter(ctx)
}

func (b *B2) Delete(ctx context.Context, fileName string) error {
	return b.bucket.Object(fileName).Delete(ctx)
}

func (b *B2) Exists(ctx context.Context, fileName string) bool {
	_, err := b.bucket.Object(fileName).Attrs(ctx)
	if err != nil {
		return !b2.IsNotExist(err)
	}
	return true
}

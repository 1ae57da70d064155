package service

import (
	"context"
	"fmt"
	"io"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// bucket URLs
	_ "gocloud.dev/blob/memblob"  // mem:// bucket URLs
	"gocloud.dev/gcerrors"

	apperrors "github.com/allisson/authcore/internal/errors"
	secretsDomain "github.com/allisson/authcore/internal/secrets/domain"
)

// BlobBundleSource reads the bundle object from a gocloud blob bucket, for example
// "file:///etc/authcore" with key "secure.json".
type BlobBundleSource struct {
	bucketURL string
	key       string
}

// NewBlobBundleSource creates a BundleSource backed by the bucket at bucketURL.
func NewBlobBundleSource(bucketURL, key string) *BlobBundleSource {
	return &BlobBundleSource{
		bucketURL: bucketURL,
		key:       key,
	}
}

// Read opens the bucket, reads the whole object and closes the bucket again.
func (s *BlobBundleSource) Read(ctx context.Context) ([]byte, error) {
	bucket, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to open secrets bucket")
	}

	data, err := ReadBundle(ctx, bucket, s.key)
	return closeAfterRead(bucket, data, err)
}

// closeAfterRead closes the bucket and drops data when either the read or the close failed.
func closeAfterRead(bucket io.Closer, data []byte, readErr error) ([]byte, error) {
	closeErr := bucket.Close()
	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, apperrors.WrapStorage(closeErr, "failed to close secrets bucket")
	}
	return data, nil
}

// ReadBundle reads key from an already opened bucket.
func ReadBundle(ctx context.Context, bucket *blob.Bucket, key string) ([]byte, error) {
	data, err := bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", secretsDomain.ErrBundleNotFound, key)
		}
		return nil, apperrors.WrapStorage(err, "failed to read secrets bundle")
	}
	return data, nil
}

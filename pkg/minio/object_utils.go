package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Put uploads an object to the configured bucket.
func (m *Minio) Put(ctx context.Context, objectKey string, reader io.Reader, size ...int64) (int64, error) {
	actualSize := unknownSize
	// If size was provided, use it
	if len(size) > 0 && size[0] != 0 {
		actualSize = size[0]
	}

	partSize := m.cfg.MinPartSize
	if partSize == 0 {
		partSize = minPartSizeForUpload
	}

	response, err := m.current().PutObject(ctx, m.cfg.Connection.BucketName, objectKey, reader, actualSize, minio.PutObjectOptions{
		PartSize:    partSize,
		ContentType: "application/json",
	})
	if err != nil {
		return 0, err
	}
	return response.Size, nil
}

// Get returns the contents of objectKey. Missing keys wrap ErrObjectNotFound.
func (m *Minio) Get(ctx context.Context, objectKey string) ([]byte, error) {
	reader, err := m.current().GetObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			m.logger.Warn("failed to close object reader", err, map[string]interface{}{"key": objectKey})
		}
	}()

	// GetObject is lazy; a missing key surfaces on the first Stat or Read.
	info, err := reader.Stat()
	if err != nil {
		return nil, translateError(err)
	}

	limit := m.cfg.MaxObjectSize
	if limit <= 0 {
		limit = DefaultMaxObjectSize
	}
	if info.Size > limit {
		return nil, fmt.Errorf("object %s is %d bytes, limit is %d", objectKey, info.Size, limit)
	}

	data := make([]byte, info.Size)
	if _, err := io.ReadFull(reader, data); err != nil {
		return nil, fmt.Errorf("failed to read object data: %w", err)
	}
	return data, nil
}

// List returns the keys of all objects under prefix.
func (m *Minio) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range m.current().ListObjects(ctx, m.cfg.Connection.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Delete removes an object from the bucket. Removing a missing key is not an error.
func (m *Minio) Delete(ctx context.Context, objectKey string) error {
	return m.current().RemoveObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.RemoveObjectOptions{})
}

func translateError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, resp.Key)
	}
	return err
}

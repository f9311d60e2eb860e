package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// Store archives raw upstream payloads for replay and debugging.
// Objects are laid out as raw/{source}/{park}/{timestamp}.json.
type Store struct {
	client    Client
	bucket    string
	retention time.Duration
}

// NewStore creates a snapshot store over the given client and bucket.
// Snapshots older than retention are removed by Prune.
func NewStore(client Client, bucket string, retention time.Duration) *Store {
	if retention <= 0 {
		retention = 14 * 24 * time.Hour
	}
	return &Store{client: client, bucket: bucket, retention: retention}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("checking archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// SaveRaw stores one raw payload fetched from an upstream source.
func (s *Store) SaveRaw(ctx context.Context, sourceName, parkID string, payload []byte) error {
	objectName := fmt.Sprintf("raw/%s/%s/%s.json",
		sourceName, parkID, time.Now().UTC().Format("2006-01-02T15-04-05Z"))

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("archiving %s: %w", objectName, err)
	}
	return nil
}

// Prune removes raw snapshots older than the store's retention and returns
// how many were deleted. Listing is paginated by the client; errors on
// individual objects abort the prune so a partial pass can be retried later.
func (s *Store) Prune(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.retention)
	removed := 0

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    "raw/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return removed, fmt.Errorf("listing archive objects: %w", obj.Err)
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("removing %s: %w", obj.Key, err)
		}
		removed++
	}

	return removed, nil
}

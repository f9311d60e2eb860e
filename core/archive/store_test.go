package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"park-pulse/core/archive/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureBucketCreatesWhenMissing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "snapshots").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "snapshots", mock.Anything).Return(nil)

	s := NewStore(client, "snapshots", 0)
	require.NoError(t, s.EnsureBucket(context.Background()))
	client.AssertExpectations(t)
}

func TestEnsureBucketSkipsWhenPresent(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "snapshots").Return(true, nil)

	s := NewStore(client, "snapshots", 0)
	require.NoError(t, s.EnsureBucket(context.Background()))
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaveRaw(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "snapshots",
		mock.MatchedBy(func(name string) bool {
			return len(name) > 0 && name[:21] == "raw/themeparks/epcot/"
		}),
		mock.Anything, int64(4), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	s := NewStore(client, "snapshots", 0)
	err := s.SaveRaw(context.Background(), "themeparks", "epcot", []byte(`{"a"`))
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestSaveRawError(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	s := NewStore(client, "snapshots", 0)
	err := s.SaveRaw(context.Background(), "themeparks", "epcot", []byte("{}"))
	assert.Error(t, err)
}

func TestPruneRemovesOnlyExpired(t *testing.T) {
	now := time.Now()
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "raw/themeparks/epcot/old.json", LastModified: now.Add(-48 * time.Hour)}
	ch <- minio.ObjectInfo{Key: "raw/themeparks/epcot/new.json", LastModified: now.Add(-time.Hour)}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "snapshots", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))
	client.On("RemoveObject", mock.Anything, "snapshots",
		"raw/themeparks/epcot/old.json", mock.Anything).Return(nil)

	s := NewStore(client, "snapshots", 24*time.Hour)
	removed, err := s.Prune(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	client.AssertNotCalled(t, "RemoveObject", mock.Anything, "snapshots",
		"raw/themeparks/epcot/new.json", mock.Anything)
}

func TestPruneAbortsOnListError(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("listing failed")}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "snapshots", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	s := NewStore(client, "snapshots", 24*time.Hour)
	_, err := s.Prune(context.Background())
	assert.Error(t, err)
}

package assetstore

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/travelbuddy/journal-api/pkg/helpers"
)

// GCSStore keeps uploads in a Google Cloud Storage bucket under uploads/ and
// references them by public object URL.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

func (s *GCSStore) Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := "uploads/" + uuid.NewString() + ext
	return helpers.UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r)
}

func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	objectPath, ok := helpers.ObjectPathFromURL(s.Bucket, ref)
	if !ok {
		return ErrNotFound
	}
	err := helpers.DeleteObject(ctx, s.Client, s.Bucket, objectPath)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrNotFound
	}
	return err
}

var _ Store = (*GCSStore)(nil)

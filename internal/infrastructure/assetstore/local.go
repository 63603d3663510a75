package assetstore

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps uploads on the local filesystem under Dir and serves them
// at BaseURL/uploads/<name>.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Save(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return s.BaseURL + "/uploads/" + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	name, ok := s.uploadName(ref)
	if !ok {
		return ErrNotFound
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// uploadName extracts the stored file name from a reference URL. Only
// references under /uploads/ resolve; anything else (including the static
// placeholder under /assets/) reports not found. The base name is taken to
// keep deletes inside Dir.
func (s *LocalStore) uploadName(ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if !strings.HasPrefix(u.Path, "/uploads/") {
		return "", false
	}
	name := filepath.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", false
	}
	return name, true
}

var _ Store = (*LocalStore)(nil)

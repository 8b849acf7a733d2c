package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxImageSize is the upload cap for event/home/category images.
const MaxImageSize = 5 << 20

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file exceeds the 5 MB limit")
)

// Bucket describes one entity-scoped object bucket. Objects live under
// Prefix inside the bucket, matching the public URL layout.
type Bucket struct {
	Name   string
	Prefix string
}

var (
	CategoryImages = Bucket{Name: "category-images", Prefix: "categories"}
	HomeImages     = Bucket{Name: "home-images", Prefix: "home-sections"}
	EventImages    = Bucket{Name: "event-images", Prefix: "events"}
)

// BucketForKind maps an upload kind parameter to its bucket.
func BucketForKind(kind string) (Bucket, bool) {
	switch kind {
	case "category":
		return CategoryImages, true
	case "home":
		return HomeImages, true
	case "event":
		return EventImages, true
	}
	return Bucket{}, false
}

// Store is the object storage boundary: upload, remove and public URL
// resolution keyed by bucket and object name.
type Store interface {
	Put(bucket Bucket, name string, r io.Reader) (string, error)
	Remove(bucket Bucket, name string) error
	PublicURL(bucket Bucket, name string) string
}

// ValidateImage rejects non-image content types and oversized files before
// any storage write happens.
func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}
	if size > MaxImageSize {
		return ErrTooLarge
	}
	return nil
}

// ObjectName builds the deterministic object name: the owning entity id (or
// a placeholder for not-yet-persisted entities) plus a timestamp and the
// original file extension.
func ObjectName(owner string, originalName string) string {
	if owner == "" {
		owner = "temp"
	}
	ext := strings.TrimPrefix(path.Ext(originalName), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s_%d.%s", owner, time.Now().UnixMilli(), ext)
}

// NameFromURL derives the object name from a previously returned public URL
// by taking its last path segment.
func NameFromURL(url string) string {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// FsStore keeps objects under <root>/<bucket>/<prefix>/<name> and resolves
// public URLs against the web server's static storage mount.
type FsStore struct {
	root    string
	baseURL string
}

func NewFsStore(root string, baseURL string) *FsStore {
	return &FsStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *FsStore) objectPath(bucket Bucket, name string) string {
	return filepath.Join(s.root, bucket.Name, bucket.Prefix, filepath.Base(name))
}

func (s *FsStore) Put(bucket Bucket, name string, r io.Reader) (string, error) {
	dst := s.objectPath(bucket, name)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrap(err, "storage: create bucket dir")
	}
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "storage: create object")
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", errors.Wrap(err, "storage: write object")
	}
	return s.PublicURL(bucket, name), nil
}

func (s *FsStore) Remove(bucket Bucket, name string) error {
	err := os.Remove(s.objectPath(bucket, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "storage: remove object")
	}
	return nil
}

func (s *FsStore) PublicURL(bucket Bucket, name string) string {
	return fmt.Sprintf("%s/public/storage/%s/%s/%s", s.baseURL, bucket.Name, bucket.Prefix, path.Base(name))
}

// List returns the object names currently stored in a bucket, used by the
// orphan sweep job.
func (s *FsStore) List(bucket Bucket) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, bucket.Name, bucket.Prefix))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "storage: list bucket")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// DeleteByURL removes the object a public URL points at. Failures are
// swallowed: image cleanup is best effort and must never block the owning
// entity write.
func DeleteByURL(s Store, bucket Bucket, url string) bool {
	name := NameFromURL(url)
	if name == "" {
		return false
	}
	if err := s.Remove(bucket, name); err != nil {
		zap.L().Warn("storage: delete by url failed",
			zap.String("bucket", bucket.Name),
			zap.String("object", name),
			zap.Error(err))
		return false
	}
	return true
}

package handlers

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
)

// Storage is the file-storage provider behind uploads. Production
// uses Google Cloud Storage; development falls back to local disk.
type Storage interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

var fileStore Storage

// InitStorage picks the provider from the environment, the same way
// the rest of the config is resolved: USE_GCS (or a Cloud Run
// indicator) selects GCS, anything else means local ./uploads.
func InitStorage(ctx context.Context) error {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("K_SERVICE") != "" // Cloud Run indicator

	if useGCS {
		store, err := NewGCSStorage(ctx, os.Getenv("GCS_BUCKET"))
		if err != nil {
			return err
		}
		fileStore = store
		return nil
	}
	fileStore = &LocalStorage{Dir: "./uploads"}
	return nil
}

// GCSStorage uploads into one bucket and serves public object URLs.
type GCSStorage struct {
	bucket string
	client *storage.Client
}

func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is not set")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCSStorage{bucket: bucket, client: client}, nil
}

func (g *GCSStorage) Upload(ctx context.Context, r io.Reader, filename, folder string) (string, error) {
	object := path.Join(folder, filename)
	wc := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(wc, r); err != nil {
		wc.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", object, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, object), nil
}

func (g *GCSStorage) Delete(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("parse object URL: %w", err)
	}
	// Object path is everything after /<bucket>/ in the public URL.
	object := strings.TrimPrefix(u.Path, "/"+g.bucket+"/")
	if object == "" || object == u.Path {
		return fmt.Errorf("URL %q is not in bucket %s", fileURL, g.bucket)
	}
	return g.client.Bucket(g.bucket).Object(object).Delete(ctx)
}

// LocalStorage writes under Dir and serves files via the /uploads/
// static route.
type LocalStorage struct {
	Dir string
}

func (l *LocalStorage) Upload(_ context.Context, r io.Reader, filename, folder string) (string, error) {
	dir := filepath.Join(l.Dir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	return "/" + path.Join("uploads", folder, filename), nil
}

func (l *LocalStorage) Delete(_ context.Context, fileURL string) error {
	rel := strings.TrimPrefix(fileURL, "/uploads/")
	if rel == fileURL {
		return fmt.Errorf("URL %q is not a local upload", fileURL)
	}
	return os.Remove(filepath.Join(l.Dir, filepath.FromSlash(rel)))
}

package publish

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"cloud.google.com/go/storage"
)

var newStorageClient = func(ctx context.Context) (*storage.Client, error) {
	return storage.NewClient(ctx)
}

// GCS uploads files to a Google Cloud Storage bucket, under Prefix when set.
// Credentials come from the environment. One client serves every upload
// until Close.
type GCS struct {
	Bucket string
	Prefix string

	mu     sync.Mutex
	client *storage.Client
}

func (g *GCS) Name() string {
	return "gs://" + path.Join(g.Bucket, g.Prefix)
}

func (g *GCS) connect(ctx context.Context) (*storage.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	client, err := newStorageClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *GCS) Upload(ctx context.Context, rc io.ReadCloser, fileName, contentType string) (string, error) {
	defer rc.Close()
	client, err := g.connect(ctx)
	if err != nil {
		return "", err
	}

	object := path.Join(g.Prefix, fileName)
	w := client.Bucket(g.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-cache"

	if _, err := io.Copy(w, rc); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.Bucket, object), nil
}

// Close releases the storage client, the next upload creates a new one
func (g *GCS) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

package publish

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/flanksource/decks/pptx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{}

func (failingSink) Name() string { return "broken" }

func (failingSink) Upload(_ context.Context, rc io.ReadCloser, _, _ string) (string, error) {
	rc.Close()
	return "", errors.New("quota exceeded")
}

func result(t *testing.T, dir, name string) *pptx.Result {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("pptx bytes "+name), 0o600))
	return &pptx.Result{Deck: name, Path: path, Slides: 3, Size: 42, SHA256: "abc"}
}

func TestPublishToDir(t *testing.T) {
	src, dest := t.TempDir(), filepath.Join(t.TempDir(), "published")
	results := []*pptx.Result{result(t, src, "a.pptx"), result(t, src, "b.pptx")}

	manifest, err := New(Dir{Path: dest}).Publish(context.Background(), results)
	require.NoError(t, err)

	_, err = uuid.Parse(manifest.BuildID)
	assert.NoError(t, err)
	require.Len(t, manifest.Items, 2)
	assert.Equal(t, []string{filepath.Join(dest, "a.pptx")}, manifest.Items[0].Locations)

	data, err := os.ReadFile(filepath.Join(dest, "b.pptx"))
	require.NoError(t, err)
	assert.Equal(t, "pptx bytes b.pptx", string(data))

	var written Manifest
	data, err = os.ReadFile(filepath.Join(dest, ManifestName))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, manifest.BuildID, written.BuildID)
	assert.Equal(t, "b.pptx", written.Items[1].File)
	assert.Equal(t, 3, written.Items[1].Slides)

	leftovers, _ := filepath.Glob(filepath.Join(dest, ".publish-*"))
	assert.Empty(t, leftovers)
}

func TestPublishFailureSkipsManifest(t *testing.T) {
	src, dest := t.TempDir(), t.TempDir()
	results := []*pptx.Result{result(t, src, "a.pptx")}

	_, err := New(Dir{Path: dest}, failingSink{}).Publish(context.Background(), results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	assert.FileExists(t, filepath.Join(dest, "a.pptx"))
	assert.NoFileExists(t, filepath.Join(dest, ManifestName))
}

func TestPublishMissingFile(t *testing.T) {
	_, err := New(Dir{Path: t.TempDir()}).Publish(context.Background(), []*pptx.Result{{Deck: "x", Path: "/nonexistent/x.pptx"}})
	assert.Error(t, err)
}

func TestEnabled(t *testing.T) {
	var p *Publisher
	assert.False(t, p.Enabled())
	assert.False(t, New().Enabled())
	assert.True(t, New(&GCS{Bucket: "decks"}).Enabled())
	assert.Equal(t, "gs://decks/builds", (&GCS{Bucket: "decks", Prefix: "builds"}).Name())
}

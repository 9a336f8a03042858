package exec

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	p := New("sh", "-c", "echo $GREETING; pwd").WithEnv(map[string]string{"GREETING": "안녕"}).WithCwd(dir)
	require.NoError(t, p.Run(context.Background()))
	assert.NoError(t, p.Err)
	assert.Contains(t, p.Stdout.String(), "안녕")

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, p.Stdout.String(), resolved)
	assert.NotNil(t, p.Started)
}

func TestRunFailure(t *testing.T) {
	p := New("sh", "-c", "echo first >&2; echo broken pipe >&2; exit 3")
	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Error(t, p.Err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := New("sleep", "5").Run(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestWhich(t *testing.T) {
	path, err := Which("definitely-not-installed-decks", "sh")
	require.NoError(t, err)
	assert.Equal(t, "sh", filepath.Base(path))

	_, err = Which("definitely-not-installed-decks")
	assert.True(t, errors.Is(err, ErrNotFound))
}

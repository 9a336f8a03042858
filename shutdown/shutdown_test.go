package shutdown

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooksRunInPriorityOrder(t *testing.T) {
	var order []string
	AddHookWithPriority("db", PriorityDatabase, func() { order = append(order, "db") })
	AddHookWithPriority("default", PriorityDefault, func() { order = append(order, "default") })
	AddHookWithPriority("tasks", PriorityTasks, func() { order = append(order, "tasks") })
	AddHookWithPriority("panics", PriorityDefault, func() { panic("hook failed") })
	AddHookWithPriority("default-2", PriorityDefault, func() { order = append(order, "default-2") })
	assert.Equal(t, 5, Pending())

	Shutdown()
	assert.Equal(t, []string{"tasks", "default", "default-2", "db"}, order)
	assert.Zero(t, Pending())

	// hooks are consumed
	Shutdown()
	assert.Len(t, order, 4)
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".decks-123.pptx", ".decks-456.pptx", "keep.pptx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	RemoveFiles(dir, ".decks-*.pptx")
	Shutdown()

	left, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "keep.pptx")}, left)
}

package shutdown

import (
	"container/heap"
	"os"
	"path/filepath"
	"sync"

	"github.com/flanksource/commons/logger"
)

// Hook priorities, lowest runs first
const (
	PriorityTasks    = 0
	PriorityDefault  = 100
	PriorityFiles    = 200
	PriorityDatabase = 300
)

type hook struct {
	label    string
	priority int
	seq      int
	fn       func()
}

// hookQueue orders hooks by priority, then by registration
type hookQueue []*hook

func (q hookQueue) Len() int { return len(q) }
func (q hookQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q hookQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *hookQueue) Push(x interface{}) { *q = append(*q, x.(*hook)) }

func (q *hookQueue) Pop() interface{} {
	old := *q
	last := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return last
}

var (
	hooks    hookQueue
	seq      int
	hooksMux sync.Mutex
)

// AddHookWithPriority registers a shutdown hook with specific priority
func AddHookWithPriority(label string, priority int, fn func()) {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	seq++
	heap.Push(&hooks, &hook{label: label, priority: priority, seq: seq, fn: fn})
}

// Pending returns the number of hooks not yet run
func Pending() int {
	hooksMux.Lock()
	defer hooksMux.Unlock()
	return hooks.Len()
}

// RemoveFiles registers a hook deleting whatever matches pattern in dir,
// used for presentations left half written by an interrupted build
func RemoveFiles(dir, pattern string) {
	AddHookWithPriority("remove "+filepath.Join(dir, pattern), PriorityFiles, func() {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			logger.Warnf("failed to list %s: %v", pattern, err)
			return
		}
		for _, match := range matches {
			if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
				logger.Warnf("failed to remove %s: %v", match, err)
				continue
			}
			logger.Debugf("removed %s", match)
		}
	})
}

// Shutdown runs and consumes every registered hook. A panicking hook is
// logged and does not stop the rest.
func Shutdown() {
	hooksMux.Lock()
	defer hooksMux.Unlock()

	if hooks.Len() == 0 {
		return
	}
	logger.Debugf("running %d shutdown hooks", hooks.Len())

	for hooks.Len() > 0 {
		h := heap.Pop(&hooks).(*hook)
		logger.Debugf("shutdown hook %s (priority=%d)", h.label, h.priority)
		run(h)
	}
}

func run(h *hook) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("shutdown hook %s panicked: %v", h.label, r)
		}
	}()
	h.fn()
}

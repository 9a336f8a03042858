package task

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/commons/collections"
	flanksourceContext "github.com/flanksource/commons/context"
	"github.com/flanksource/commons/logger"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Manager runs tasks on a fixed pool of workers and reports their progress
// on stderr
type Manager struct {
	tasks         []*Task
	mu            sync.RWMutex
	wg            sync.WaitGroup
	stopRender    chan struct{}
	renderDone    chan struct{}
	rendered      int
	maxConcurrent int
	retryConfig   RetryConfig
	taskTimeout   time.Duration
	isInteractive bool
	noColor       bool
	noProgress    bool
	out           io.Writer
	styles        styleSet

	// Signal management
	signalChan       chan os.Signal
	signalRegistered bool
	gracefulTimeout  time.Duration
	onInterrupt      func()
	signalMu         sync.Mutex
	shutdownOnce     sync.Once

	// Priority queue for task scheduling
	taskQueue     *collections.Queue[*Task]
	shutdown      chan struct{}
	closeOnce     sync.Once
	workersActive atomic.Int32
}

type styleSet struct {
	success   lipgloss.Style
	failed    lipgloss.Style
	warning   lipgloss.Style
	running   lipgloss.Style
	info      lipgloss.Style
	cancelled lipgloss.Style
	pending   lipgloss.Style
}

func newStyles(out io.Writer, noColor bool) styleSet {
	renderer := lipgloss.NewRenderer(out)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return styleSet{
		success:   renderer.NewStyle().Foreground(lipgloss.Color("10")),
		failed:    renderer.NewStyle().Foreground(lipgloss.Color("9")),
		warning:   renderer.NewStyle().Foreground(lipgloss.Color("11")),
		running:   renderer.NewStyle().Foreground(lipgloss.Color("14")),
		info:      renderer.NewStyle().Foreground(lipgloss.Color("8")),
		cancelled: renderer.NewStyle().Foreground(lipgloss.Color("13")),
		pending:   renderer.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

// NewManager creates a Manager writing progress to stderr
func NewManager(options ManagerOptions) *Manager {
	return newManager(options, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func newManager(options ManagerOptions, out io.Writer, isInteractive bool) *Manager {
	maxConcurrent := options.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	taskQueue, err := collections.NewQueue(collections.QueueOpts[*Task]{
		Comparator: func(a, b *Task) int {
			// lower priority value first, then by enqueue time
			if a.priority != b.priority {
				if a.priority < b.priority {
					return -1
				}
				return 1
			}
			if !a.enqueuedAt.Equal(b.enqueuedAt) {
				if a.enqueuedAt.Before(b.enqueuedAt) {
					return -1
				}
				return 1
			}
			return 0
		},
		Dedupe: false,
		Metrics: collections.MetricsOpts[*Task]{
			Disable: true,
		},
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create task queue: %v", err))
	}

	gracefulTimeout := options.GracefulTimeout
	if gracefulTimeout <= 0 {
		gracefulTimeout = 10 * time.Second
	}

	tm := &Manager{
		stopRender:      make(chan struct{}),
		renderDone:      make(chan struct{}),
		maxConcurrent:   maxConcurrent,
		retryConfig:     options.retryConfig(),
		taskTimeout:     options.TaskTimeout,
		isInteractive:   isInteractive,
		noColor:         options.NoColor,
		noProgress:      options.NoProgress,
		out:             out,
		styles:          newStyles(out, options.NoColor),
		gracefulTimeout: gracefulTimeout,
		taskQueue:       taskQueue,
		shutdown:        make(chan struct{}),
	}

	for i := 0; i < maxConcurrent; i++ {
		w := &worker{id: i, manager: tm}
		go w.run()
	}

	if options.HandleSignals {
		tm.registerSignalHandling()
	}

	go tm.render()
	return tm
}

// SetInterruptHandler sets a callback run once on the first interrupt, after
// the running tasks stopped or the graceful timeout passed
func (tm *Manager) SetInterruptHandler(fn func()) {
	tm.signalMu.Lock()
	defer tm.signalMu.Unlock()
	tm.onInterrupt = fn
}

func (tm *Manager) newTask(name string, opts ...Option) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	taskCtx := flanksourceContext.NewContext(ctx)
	taskCtx.Logger = logger.GetSlogLogger().Named(fmt.Sprintf("task.%s", name))

	task := &Task{
		name:        name,
		status:      StatusPending,
		manager:     tm,
		cancel:      cancel,
		ctx:         taskCtx,
		timeout:     tm.taskTimeout,
		retryConfig: tm.retryConfig,
		doneChan:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(task)
	}

	if task.timeout > 0 {
		timeoutCtx, timeoutCancel := taskCtx.WithTimeout(task.timeout)
		timeoutCtx.Logger = taskCtx.Logger
		task.ctx = timeoutCtx
		task.cancel = func() {
			timeoutCancel()
			cancel()
		}
	}
	return task
}

// Start schedules fn on the next free worker
func (tm *Manager) Start(name string, fn func(flanksourceContext.Context, *Task) error, opts ...Option) *Task {
	return tm.StartWithResult(name, func(ctx flanksourceContext.Context, t *Task) (interface{}, error) {
		return nil, fn(ctx, t)
	}, opts...)
}

// StartWithResult schedules fn and keeps what it returns as the task result
func (tm *Manager) StartWithResult(name string, fn func(flanksourceContext.Context, *Task) (interface{}, error), opts ...Option) *Task {
	task := tm.newTask(name, opts...)
	task.runFunc = fn

	tm.mu.Lock()
	task.enqueuedAt = time.Now()
	tm.tasks = append(tm.tasks, task)
	tm.wg.Add(1)
	tm.mu.Unlock()

	tm.taskQueue.Enqueue(task)
	return task
}

// Tasks returns every task started on the manager, in start order
func (tm *Manager) Tasks() []*Task {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return append([]*Task(nil), tm.tasks...)
}

// CancelAll cancels all pending and running tasks
func (tm *Manager) CancelAll() {
	for _, task := range tm.Tasks() {
		task.Cancel()
	}
}

// Wait waits for all tasks to complete, stops the workers and returns the
// exit code: 1 when any task failed or was cancelled
func (tm *Manager) Wait() int {
	tm.wg.Wait()
	tm.Close()

	for _, task := range tm.Tasks() {
		switch task.Status() {
		case StatusFailed, StatusCancelled:
			return 1
		}
	}
	return 0
}

// Close stops the workers, the progress display and the interrupt handling
func (tm *Manager) Close() {
	tm.closeOnce.Do(func() {
		tm.stopSignalHandling()
		close(tm.shutdown)
		close(tm.stopRender)
		<-tm.renderDone
	})
}

// Debug returns debug information about the manager
func (tm *Manager) Debug() string {
	var sb strings.Builder
	tasks := tm.Tasks()
	fmt.Fprintf(&sb, "Task Manager: {no-color=%v, no-progress=%v, workers=%d}\n", tm.noColor, tm.noProgress, tm.maxConcurrent)
	fmt.Fprintf(&sb, "  Total Tasks: %d\n", len(tasks))
	fmt.Fprintf(&sb, "  Active Workers: %d\n", tm.workersActive.Load())
	sb.WriteString("  Task Details:\n")
	for _, task := range tasks {
		fmt.Fprintf(&sb, "    - %s: %v\n", task.Name(), task.Status())
	}
	return sb.String()
}

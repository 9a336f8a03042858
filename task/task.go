package task

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	flanksourceContext "github.com/flanksource/commons/context"
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/commons/text"
	"github.com/flanksource/decks/formatters"
	"github.com/samber/lo"
)

// Status represents the status of a task
type Status string

const (
	// StatusPending indicates the task is waiting for a worker
	StatusPending Status = "pending"
	// StatusRunning indicates the task is currently running
	StatusRunning Status = "running"
	// StatusSuccess indicates the task completed successfully
	StatusSuccess Status = "success"
	// StatusFailed indicates the task failed
	StatusFailed Status = "failed"
	// StatusCancelled indicates the task was cancelled
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Icon() string {
	switch s {
	case StatusPending:
		return "⏳"
	case StatusRunning:
		return "⟳"
	case StatusSuccess:
		return "✓"
	case StatusFailed:
		return "✗"
	case StatusCancelled:
		return "⊘"
	default:
		return ""
	}
}

// Done reports whether the status is final.
func (s Status) Done() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusCancelled
}

func (s Status) style(styles styleSet) lipgloss.Style {
	switch s {
	case StatusRunning:
		return styles.running
	case StatusSuccess:
		return styles.success
	case StatusFailed:
		return styles.failed
	case StatusCancelled:
		return styles.cancelled
	}
	return styles.pending
}

// LogEntry represents a log message from a task
type LogEntry struct {
	Level   logger.LogLevel
	Message string
	Time    time.Time
}

// RetryConfig holds configuration for task retry behavior
type RetryConfig struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	JitterFactor    float64
	RetryableErrors []string // Error message patterns that should trigger retries
}

// DefaultRetryConfig retries the transient file system errors a build can hit
// while another process holds the output open.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     1 * time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.1,
		RetryableErrors: []string{
			"timeout", "temporary", "resource temporarily unavailable",
			"text file busy", "too many open files", "device or resource busy",
		},
	}
}

// Task is one unit of work scheduled on the manager's workers
type Task struct {
	name        string
	status      Status
	dirty       atomic.Bool // modified since the last render
	startTime   time.Time
	endTime     time.Time
	manager     *Manager
	logs        []LogEntry
	cancel      context.CancelFunc
	ctx         flanksourceContext.Context
	timeout     time.Duration
	runFunc     func(flanksourceContext.Context, *Task) (interface{}, error)
	err         error
	mu          sync.Mutex
	retryConfig RetryConfig
	retryCount  int
	doneChan    chan struct{}
	doneOnce    sync.Once
	completed   atomic.Bool
	priority    int // lower runs first
	enqueuedAt  time.Time
	result      interface{}
}

// Name returns the task name
func (t *Task) Name() string {
	return t.name
}

// Context returns the task's context for cancellation
func (t *Task) Context() flanksourceContext.Context {
	return t.ctx
}

// Cancel cancels a pending or running task
func (t *Task) Cancel() {
	t.mu.Lock()
	if t.status.Done() {
		t.mu.Unlock()
		return
	}
	t.err = context.Canceled
	t.setStatus(StatusCancelled)
	t.mu.Unlock()
}

func (t *Task) signalDone() {
	t.doneOnce.Do(func() {
		close(t.doneChan)
	})
}

func (t *Task) log(level logger.LogLevel, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	t.mu.Lock()
	t.logs = append(t.logs, LogEntry{Level: level, Message: message, Time: time.Now()})
	t.mu.Unlock()
	t.dirty.Store(true)

	switch level {
	case logger.Error:
		t.ctx.Logger.Errorf("%s", message)
	case logger.Warn:
		t.ctx.Logger.Warnf("%s", message)
	case logger.Info:
		t.ctx.Logger.Infof("%s", message)
	default:
		t.ctx.Logger.Debugf("%s", message)
	}
}

func (t *Task) Debugf(format string, args ...interface{}) { t.log(logger.Debug, format, args...) }
func (t *Task) Infof(format string, args ...interface{})  { t.log(logger.Info, format, args...) }
func (t *Task) Warnf(format string, args ...interface{})  { t.log(logger.Warn, format, args...) }
func (t *Task) Errorf(format string, args ...interface{}) { t.log(logger.Error, format, args...) }

// PopDirty reports whether the task changed since the last call
func (t *Task) PopDirty() bool {
	return t.dirty.Swap(false)
}

// setStatus must be called with t.mu held
func (t *Task) setStatus(status Status) {
	switch status {
	case StatusRunning:
		t.startTime = time.Now()
	case StatusSuccess, StatusFailed, StatusCancelled:
		t.endTime = time.Now()
		if t.cancel != nil {
			t.cancel()
			t.cancel = nil
		}
		if !t.completed.Swap(true) && t.manager != nil {
			t.manager.wg.Done()
		}
		defer t.signalDone()
	}
	t.status = status
	t.dirty.Store(true)
}

// Status returns the current task status
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Error returns the task's error if any
func (t *Task) Error() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Result returns what the task function returned, nil until it succeeds
func (t *Task) Result() interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Retries returns how many times the task function was retried
func (t *Task) Retries() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.retryCount
}

// Wait blocks until the task reaches a final status and returns its error
func (t *Task) Wait() error {
	<-t.doneChan
	return t.Error()
}

// Done is closed once the task reaches a final status
func (t *Task) Done() <-chan struct{} {
	return t.doneChan
}

// Duration returns how long the task has been, or was, running
func (t *Task) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration()
}

func (t *Task) duration() time.Duration {
	if t.startTime.IsZero() {
		return 0
	}
	end := t.endTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(t.startTime)
}

// Pretty renders one status line for the task followed by its recent
// warnings and errors. Results that know how to print themselves replace the
// default line once the task succeeds.
func (t *Task) Pretty() string {
	return t.pretty(t.manager.styles)
}

func (t *Task) pretty(styles styleSet) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var duration string
	if d := t.duration(); d > 0 {
		duration = text.HumanizeDuration(d)
	}
	line := fmt.Sprintf("%s %-50s %-10s", t.status.Icon(), lo.Ellipsis(t.name, 50), duration)
	if pretty, ok := t.result.(formatters.PrettyMixin); ok && t.status == StatusSuccess {
		line = fmt.Sprintf("%s %s %s", t.status.Icon(), pretty.Pretty(), duration)
	}
	if t.retryCount > 0 {
		line += fmt.Sprintf(" (retried %d)", t.retryCount)
	}

	var sb strings.Builder
	sb.WriteString(t.status.style(styles).Render(line))

	logs := t.logs
	if len(logs) > 5 {
		logs = logs[len(logs)-5:]
	}
	for _, entry := range logs {
		var style lipgloss.Style
		switch entry.Level {
		case logger.Error:
			style = styles.failed
		case logger.Warn:
			style = styles.warning
		default:
			continue
		}
		sb.WriteString("\n    ")
		sb.WriteString(style.Render(entry.Message))
	}
	return sb.String()
}

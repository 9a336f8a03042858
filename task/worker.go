package task

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
)

// worker represents a worker goroutine that processes tasks
type worker struct {
	manager *Manager
	id      int
}

// run is the main loop for a worker goroutine
func (w *worker) run() {
	for {
		select {
		case <-w.manager.shutdown:
			return
		default:
		}

		task, ok := w.manager.taskQueue.Dequeue()
		if !ok {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		w.manager.workersActive.Add(1)
		w.executeTask(task)
		w.manager.workersActive.Add(-1)
	}
}

// executeTask runs a single task unless it was cancelled while queued
func (w *worker) executeTask(task *Task) {
	task.mu.Lock()
	if task.status != StatusPending {
		task.mu.Unlock()
		return
	}
	task.setStatus(StatusRunning)
	task.mu.Unlock()

	logger.Debugf("worker %d picked up %s", w.id, task.name)
	w.executeWithRetry(task)
}

// executeWithRetry handles task execution with exponential backoff retry
func (w *worker) executeWithRetry(task *Task) {
	for {
		result, err := w.call(task)

		task.mu.Lock()
		if task.status != StatusRunning {
			// cancelled while running
			task.mu.Unlock()
			return
		}

		if err == nil {
			task.result = result
			task.setStatus(StatusSuccess)
			task.mu.Unlock()
			return
		}

		if !shouldRetryError(err, task.retryConfig) || task.retryCount >= task.retryConfig.MaxRetries {
			task.err = err
			task.logs = append(task.logs, LogEntry{Level: logger.Error, Message: err.Error(), Time: time.Now()})
			task.setStatus(StatusFailed)
			task.mu.Unlock()
			return
		}

		task.retryCount++
		attempt := task.retryCount
		task.logs = append(task.logs, LogEntry{
			Level:   logger.Warn,
			Message: fmt.Sprintf("Attempt %d failed, retrying: %v", attempt, err),
			Time:    time.Now(),
		})
		task.dirty.Store(true)
		task.mu.Unlock()

		delay := calculateBackoffDelay(attempt, task.retryConfig)
		select {
		case <-time.After(delay):
		case <-task.ctx.Done():
			task.mu.Lock()
			if !task.status.Done() {
				task.err = fmt.Errorf("%s gave up after %d attempts: %w", task.name, attempt, task.ctx.Err())
				task.setStatus(StatusFailed)
			}
			task.mu.Unlock()
			return
		}
	}
}

// call runs the task function once, turning a panic into an error
func (w *worker) call(task *Task) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", task.name, r)
		}
	}()
	if task.runFunc == nil {
		return nil, nil
	}
	return task.runFunc(task.ctx, task)
}

// shouldRetryError checks if an error should trigger a retry
func shouldRetryError(err error, config RetryConfig) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range config.RetryableErrors {
		if strings.Contains(errMsg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// calculateBackoffDelay calculates the delay for the next retry with exponential backoff and jitter
func calculateBackoffDelay(retryCount int, config RetryConfig) time.Duration {
	delay := float64(config.BaseDelay) * math.Pow(config.BackoffFactor, float64(retryCount-1))

	if config.MaxDelay > 0 && delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}

	// jitter spreads out retries of tasks that failed together
	jitter := delay * config.JitterFactor * (rand.Float64() - 0.5) * 2
	finalDelay := delay + jitter

	if finalDelay < 0 {
		finalDelay = float64(config.BaseDelay)
	}

	return time.Duration(finalDelay)
}

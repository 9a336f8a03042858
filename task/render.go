package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

// Render draws the current state of all tasks. On a terminal the previous
// frame is cleared and redrawn; otherwise only tasks that changed are printed,
// once they finish.
func (tm *Manager) Render() {
	tasks := tm.Tasks()
	if len(tasks) == 0 || tm.noProgress {
		return
	}

	if tm.isInteractive {
		output := termenv.NewOutput(tm.out)
		frame := tm.Pretty()

		tm.mu.Lock()
		defer tm.mu.Unlock()
		if tm.rendered > 0 {
			output.ClearLines(tm.rendered)
		}
		fmt.Fprintln(tm.out, frame)
		tm.rendered = strings.Count(frame, "\n") + 1
		return
	}

	for _, task := range tasks {
		if task.Status().Done() && task.PopDirty() {
			fmt.Fprintln(tm.out, task.Pretty())
		}
	}
}

// render is the main rendering loop
func (tm *Manager) render() {
	defer close(tm.renderDone)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-tm.stopRender:
			tm.Render()
			return
		case <-ticker.C:
			tm.Render()
		}
	}
}

// Pretty renders every task, one block per task
func (tm *Manager) Pretty() string {
	if tm == nil {
		return ""
	}
	tasks := tm.Tasks()
	if len(tasks) == 0 {
		return "No tasks running"
	}

	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, "  "+strings.ReplaceAll(task.pretty(tm.styles), "\n", "\n  "))
	}
	return strings.Join(lines, "\n")
}

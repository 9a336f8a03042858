package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/flanksource/commons/logger"
)

// ErrNotFound is returned when none of the candidate binaries is on the PATH.
var ErrNotFound = errors.New("executable not found")

// Process runs an external command and keeps its output
type Process struct {
	Started *time.Time
	Env     map[string]string
	Cwd     string
	Err     error
	Log     logger.Logger
	Stderr  bytes.Buffer
	Stdout  bytes.Buffer
	Cmd     string
	Args    []string
}

func New(cmd string, args ...string) *Process {
	return &Process{Cmd: cmd, Args: args, Log: logger.GetLogger("exec")}
}

// Which returns the first of names found on the PATH.
func Which(names ...string) (string, error) {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, strings.Join(names, ", "))
}

func (p *Process) Out() string {
	return p.Stderr.String() + p.Stdout.String()
}

func (p *Process) WithEnv(env map[string]string) *Process {
	p.Env = env
	return p
}

func (p *Process) WithCwd(cwd string) *Process {
	p.Cwd = cwd
	return p
}

func (p *Process) Name() string {
	return strings.TrimSpace(p.Cmd + " " + strings.Join(p.Args, " "))
}

// Run runs the process to completion, killing it when ctx is done
func (p *Process) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, p.Cmd, p.Args...)
	cmd.Dir = p.Cwd
	cmd.Stderr = &p.Stderr
	cmd.Stdout = &p.Stdout
	if len(p.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range p.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	now := time.Now()
	p.Started = &now
	p.Log.Debugf("running %s", p.Name())

	p.Err = cmd.Run()
	if p.Err != nil {
		p.Err = fmt.Errorf("%s failed: %w: %s", p.Cmd, p.Err, lastLine(p.Out()))
		return p.Err
	}
	p.Log.Debugf("%s finished in %s", p.Cmd, time.Since(now).Round(time.Millisecond))
	return nil
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return lines[len(lines)-1]
}

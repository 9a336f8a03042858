package task

import (
	"time"

	"github.com/spf13/pflag"
)

// Option configures task creation
type Option func(*Task)

// WithPriority sets the priority for task scheduling (lower = higher priority)
func WithPriority(priority int) Option {
	return func(t *Task) {
		t.priority = priority
	}
}

// ManagerOptions contains configuration options for the Manager
type ManagerOptions struct {
	NoColor         bool          // Disable colored output
	NoProgress      bool          // Disable progress display
	MaxConcurrent   int           // Number of workers
	GracefulTimeout time.Duration // Timeout for graceful shutdown
	TaskTimeout     time.Duration // Per task timeout, none when zero

	// Retry configuration
	MaxRetries int           // Maximum retry attempts
	RetryDelay time.Duration // Base delay between retries

	// HandleSignals installs SIGINT/SIGTERM handling on the manager
	HandleSignals bool `yaml:"-" json:"-"`
}

// DefaultManagerOptions returns sensible defaults
func DefaultManagerOptions() *ManagerOptions {
	return &ManagerOptions{
		MaxConcurrent:   4,
		GracefulTimeout: 10 * time.Second,
		TaskTimeout:     5 * time.Minute,
		MaxRetries:      2,
		RetryDelay:      500 * time.Millisecond,
	}
}

func (opts ManagerOptions) retryConfig() RetryConfig {
	config := DefaultRetryConfig()
	config.MaxRetries = opts.MaxRetries
	if opts.RetryDelay > 0 {
		config.BaseDelay = opts.RetryDelay
	}
	return config
}

// BindManagerPFlags adds Manager flags to pflag set (for Cobra). --no-color is
// shared with the formatters and bound there.
func BindManagerPFlags(flags *pflag.FlagSet, options *ManagerOptions) {
	flags.BoolVar(&options.NoProgress, "no-progress", options.NoProgress,
		"Disable progress display")
	flags.IntVar(&options.MaxConcurrent, "max-concurrent", options.MaxConcurrent,
		"Maximum decks built at once")
	flags.DurationVar(&options.GracefulTimeout, "graceful-timeout", options.GracefulTimeout,
		"Timeout for graceful shutdown on interrupt")
	flags.DurationVar(&options.TaskTimeout, "timeout", options.TaskTimeout,
		"Timeout for building a single deck (0 = none)")
	flags.IntVar(&options.MaxRetries, "max-retries", options.MaxRetries,
		"Maximum retry attempts for failed builds")
	flags.DurationVar(&options.RetryDelay, "retry-delay", options.RetryDelay,
		"Base delay between retry attempts")
}

package bootstrap

import (
	"time"

	"github.com/kbukum/dikit/di"
	"github.com/kbukum/dikit/logger"
)

// Option configures the App during creation. Options are non-generic so
// they can be used with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	container       *di.Container
	containerConfig *di.Config
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. If not set, the logger is initialized
// from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout bounds the time OnStop hooks may take.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithContainer uses an existing container instead of creating one.
func WithContainer(c *di.Container) Option {
	return func(o *appOptions) {
		o.container = c
	}
}

// WithContainerConfig creates the application container from cfg.
func WithContainerConfig(cfg di.Config) Option {
	return func(o *appOptions) {
		o.containerConfig = &cfg
	}
}

package promise

import (
	"github.com/sirupsen/logrus"
)

type config struct {
	executor Executor
	logger   logrus.FieldLogger
	observer Observer
}

func defaultConfig() config {
	return config{
		executor: Immediate,
		logger:   logrus.StandardLogger(),
	}
}

// Option configures a deferred at construction time. Deferreds derived through
// Then, Map, Consume, and All inherit their parent's configuration.
type Option func(*config)

// WithExecutor pins the deferred's callbacks to e. The default is Immediate.
func WithExecutor(e Executor) Option {
	return func(c *config) {
		if e != nil {
			c.executor = e
		}
	}
}

// WithLogger sets the logger used to report panics escaping plain Done, Fail,
// and Always callbacks. The default is logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver attaches o to the deferred and everything derived from it.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

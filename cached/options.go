package cached

import "github.com/cockroachdb/errors"

type config struct {
	maxSize    int
	maxSizeSet bool
	observer   Observer
	locator    Locator
}

// Option configures a cached method at construction.
type Option func(*config)

// WithMaxSize bounds every instance cache of the method to n entries with
// least-recently-used eviction. Without it instance caches grow without
// limit for the lifetime of their owner.
func WithMaxSize(n int) Option {
	return func(c *config) {
		c.maxSize = n
		c.maxSizeSet = true
	}
}

// WithObserver reports cache events of the method to o. The observer runs
// synchronously on the calling goroutine.
func WithObserver(o Observer) Option {
	return func(c *config) { c.observer = o }
}

// WithLocator makes the method find instance slots through l instead of
// the Owner interface.
func WithLocator(l Locator) Option {
	return func(c *config) { c.locator = l }
}

func applyOptions(name string, opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxSizeSet && cfg.maxSize <= 0 {
		panic(errors.Wrapf(ErrInvalidMaxSize, "method %q: got %d", name, cfg.maxSize))
	}
	return cfg
}

package memory

import (
	"time"
)

// BuildEvent describes one completed (or failed) construction.
type BuildEvent struct {
	// Kind names the structure that was built, e.g. "bitmap" or "offset".
	Kind string
	// Len is the logical length of the result (0 on failure).
	Len int
	// Bytes is the number of buffer bytes owned by the result.
	Bytes int
	// Duration is the wall time spent in construction.
	Duration time.Duration
	// Err is nil if construction succeeded.
	Err error
}

// Observer receives build events. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveBuild(ev BuildEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev BuildEvent)

// ObserveBuild implements Observer.
func (f ObserverFunc) ObserveBuild(ev BuildEvent) { f(ev) }

type multiObserver []Observer

func (m multiObserver) ObserveBuild(ev BuildEvent) {
	for _, o := range m {
		o.ObserveBuild(ev)
	}
}

// Observers fans a build event out to every non-nil observer.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Config holds the resolved construction options.
type Config struct {
	Allocator Allocator
	Growth    GrowthPolicy
	Observer  Observer
}

// Option configures construction.
type Option func(*Config)

// WithAllocator sets the allocator used for every buffer of the built value.
//
// If nil is passed, DefaultAllocator is used.
func WithAllocator(a Allocator) Option {
	return func(c *Config) {
		if a == nil {
			a = DefaultAllocator
		}
		c.Allocator = a
	}
}

// WithGrowth sets the growth policy used when a size hint under-predicts.
func WithGrowth(p GrowthPolicy) Option {
	return func(c *Config) {
		c.Growth = p
	}
}

// WithObserver installs an observer notified after each construction.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// NewConfig applies opts on top of the defaults.
func NewConfig(opts ...Option) Config {
	c := Config{
		Allocator: DefaultAllocator,
		Growth:    GrowExact,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Observe reports a build that started at start. It is a no-op without observer.
func (c Config) Observe(kind string, start time.Time, n, bytes int, err error) {
	if c.Observer == nil {
		return
	}
	if err != nil {
		n, bytes = 0, 0
	}
	c.Observer.ObserveBuild(BuildEvent{
		Kind:     kind,
		Len:      n,
		Bytes:    bytes,
		Duration: time.Since(start),
		Err:      err,
	})
}

// Options returns the allocation options of c without the observer, for
// nested builders whose construction is reported by their owner.
func (c Config) Options() []Option {
	return []Option{WithAllocator(c.Allocator), WithGrowth(c.Growth)}
}

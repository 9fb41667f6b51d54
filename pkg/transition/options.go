package transition

import "log/slog"

type options struct {
	logger    *slog.Logger
	observer  Observer
	clock     Clock
	scheduler Scheduler
	onChange  func()
	instance  string
}

// Option configures a Listener or an Outlet.
type Option func(*options)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithClock sets the time source used for animation offsets.
func WithClock(clock Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithScheduler sets the scheduler for exit timeouts. Without one, exit
// timeouts are not armed.
func WithScheduler(scheduler Scheduler) Option {
	return func(o *options) {
		o.scheduler = scheduler
	}
}

// WithOnChange sets a callback invoked whenever an outlet's pending list
// changes, so the host can schedule a re-render.
func WithOnChange(fn func()) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// WithInstance names an outlet instance. Render emits it as data-instance
// so a host can route exit completions back to this outlet.
func WithInstance(id string) Option {
	return func(o *options) {
		o.instance = id
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.logger = o.logger.With("component", component)
	if o.observer == nil {
		o.observer = NopObserver{}
	}
	if o.clock == nil {
		o.clock = systemClock{}
	}
	if o.onChange == nil {
		o.onChange = func() {}
	}
	return o
}

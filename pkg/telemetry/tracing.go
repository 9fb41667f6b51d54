package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/outlet/pkg/transition"
)

// Default tracer name.
const defaultTracerName = "outlet"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "outlet").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// Tracing creates spans for transition activity. Use ForSession to get an
// observer bound to one session.
type Tracing struct {
	tracer trace.Tracer
}

// NewTracing creates a tracing observer factory. Without WithTracer the
// global OpenTelemetry tracer provider is used.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Tracer == nil {
		config.Tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{tracer: config.Tracer}
}

// ForSession returns an observer that tags spans with the session ID.
// The observer is confined to that session's loop.
func (t *Tracing) ForSession(sessionID string) *SessionTracer {
	return &SessionTracer{
		tracer:  t.tracer,
		session: attribute.String("outlet.session_id", sessionID),
	}
}

// SessionTracer is a transition.Observer producing one span per pre-commit.
// Snapshots queued during the pre-commit are recorded as span events.
type SessionTracer struct {
	tracer  trace.Tracer
	session attribute.KeyValue
	current trace.Span
}

var _ transition.Observer = (*SessionTracer)(nil)

// PreCommit implements transition.Observer.
func (s *SessionTracer) PreCommit(from, to string) func(string, bool) {
	_, span := s.tracer.Start(context.Background(), "outlet.precommit",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			s.session,
			attribute.String("outlet.from", from),
			attribute.String("outlet.to", to),
		),
	)
	s.current = span

	return func(match string, found bool) {
		span.SetAttributes(attribute.Bool("outlet.matched", found))
		if found {
			span.SetAttributes(attribute.String("outlet.match", match))
		}
		span.End()
		s.current = nil
	}
}

// SnapshotQueued implements transition.Observer.
func (s *SessionTracer) SnapshotQueued(path string, id int, mode transition.Mode) {
	attrs := trace.WithAttributes(
		attribute.String("outlet.path", path),
		attribute.Int("outlet.snapshot_id", id),
		attribute.String("outlet.mode", mode.String()),
	)
	if s.current != nil {
		s.current.AddEvent("snapshot.queued", attrs)
		return
	}
	_, span := s.tracer.Start(context.Background(), "outlet.capture", trace.WithAttributes(s.session))
	span.AddEvent("snapshot.queued", attrs)
	span.End()
}

// SnapshotReleased implements transition.Observer.
func (s *SessionTracer) SnapshotReleased(path string, id int, reason transition.ReleaseReason, age time.Duration) {
	_, span := s.tracer.Start(context.Background(), "outlet.snapshot.release",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			s.session,
			attribute.String("outlet.path", path),
			attribute.Int("outlet.snapshot_id", id),
			attribute.String("outlet.release_reason", reason.String()),
			attribute.Int64("outlet.age_ms", age.Milliseconds()),
		),
	)
	span.End()
}

package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/outlet/pkg/transition"
)

type recordingSpan struct {
	noop.Span
	name   string
	attrs  map[attribute.Key]attribute.Value
	events []string
	ended  bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordingSpan) AddEvent(name string, _ ...trace.EventOption) {
	s.events = append(s.events, name)
}

func (s *recordingSpan) End(...trace.SpanEndOption) {
	s.ended = true
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{name: name, attrs: make(map[attribute.Key]attribute.Value)}
	s.SetAttributes(cfg.Attributes()...)
	t.spans = append(t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

func TestSessionTracerPreCommit(t *testing.T) {
	tracer := &recordingTracer{}
	obs := NewTracing(WithTracer(tracer)).ForSession("sess-1")

	done := obs.PreCommit("/app", "/app/settings")
	obs.SnapshotQueued("/app", 0, transition.ModeClone)
	done("/app", true)

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	span := tracer.spans[0]
	if span.name != "outlet.precommit" || !span.ended {
		t.Errorf("span = %s ended=%v", span.name, span.ended)
	}
	if span.attrs["outlet.session_id"].AsString() != "sess-1" {
		t.Errorf("session attr = %v", span.attrs["outlet.session_id"])
	}
	if span.attrs["outlet.match"].AsString() != "/app" || !span.attrs["outlet.matched"].AsBool() {
		t.Errorf("match attrs = %v", span.attrs)
	}
	if len(span.events) != 1 || span.events[0] != "snapshot.queued" {
		t.Errorf("events = %v", span.events)
	}
}

func TestSessionTracerRelease(t *testing.T) {
	tracer := &recordingTracer{}
	obs := NewTracing(WithTracer(tracer)).ForSession("s")

	obs.SnapshotQueued("/app", 3, transition.ModeMove)
	obs.SnapshotReleased("/app", 3, transition.ReleaseTimeout, 2*time.Second)

	if len(tracer.spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(tracer.spans))
	}
	rel := tracer.spans[1]
	if rel.attrs["outlet.release_reason"].AsString() != "timeout" {
		t.Errorf("reason = %v", rel.attrs["outlet.release_reason"])
	}
	if rel.attrs["outlet.age_ms"].AsInt64() != 2000 {
		t.Errorf("age = %v", rel.attrs["outlet.age_ms"])
	}
}

func TestNewTracingUsesGlobalProvider(t *testing.T) {
	obs := NewTracing().ForSession("s")
	obs.PreCommit("/a", "/b")("", false)
}

func TestObserversFanOut(t *testing.T) {
	m := NewMetrics()
	tracer := &recordingTracer{}
	obs := transition.Observers(m, NewTracing(WithTracer(tracer)).ForSession("s"), nil)

	obs.PreCommit("/a", "/b")("/a", true)
	obs.SnapshotQueued("/a", 0, transition.ModeClone)

	if len(tracer.spans) != 2 {
		t.Errorf("spans = %d, want 2", len(tracer.spans))
	}
}

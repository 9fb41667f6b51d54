// Package telemetry provides Prometheus and OpenTelemetry implementations
// of transition.Observer, plus the session and transport counters the
// server reports.
//
// Metrics collected (namespace "outlet" by default):
//   - outlet_precommits_total: pre-commit events by result (matched, unmatched)
//   - outlet_captures_total: snapshots queued by capture mode
//   - outlet_snapshots_released_total: snapshots released by reason
//   - outlet_pending_snapshots: snapshots currently playing an exit animation
//   - outlet_snapshot_lifetime_seconds: time from capture to release
//   - outlet_active_sessions: connected sessions
//   - outlet_frames_sent_total: render frames written to clients
//   - outlet_websocket_errors_total: transport errors by type
//
// Example:
//
//	metrics := telemetry.NewMetrics(telemetry.WithNamespace("myapp"))
//	tracing := telemetry.NewTracing(telemetry.WithTracerName("myapp"))
//	observer := transition.Observers(metrics, tracing.ForSession(sessionID))
//	http.Handle("/metrics", metrics.Handler())
package telemetry

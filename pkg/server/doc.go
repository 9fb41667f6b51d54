// Package server hosts outlet sessions over HTTP and WebSocket.
//
// Every GET outside the reserved paths returns an HTML shell containing the
// statically rendered route. The embedded thin client then opens a
// WebSocket, and the server creates a Session for it.
//
// # Session Lifecycle
//
// A Session owns one navigation system: a navigation.Navigator over the
// shared route tree, a transition.Registry, and a transition.Listener
// subscribed to the navigator's pre-commit event. For the committed match
// it mounts one transition.Outlet per layout, keyed by route ID and
// resolved path, and unmounts outlets whose layout left the chain.
//
// The session runs three goroutines:
//   - ReadLoop: decodes JSON messages and queues them
//   - EventLoop: navigates, runs event handlers, renders and sends frames
//   - WriteLoop: sends heartbeat pings
//
// Only EventLoop touches the navigation system. Exit-timeout timers are
// delivered to it through Dispatch.
//
// # Messages
//
// Client to server:
//
//	{"type":"navigate","path":"/app/settings/general"}
//	{"type":"event","hid":"h3","name":"click"}
//	{"type":"complete","outlet":"2","snapshot":0}
//
// Exit overlays are completed by outlet instance and snapshot id, never by
// hydration ID, since hydration IDs are renumbered on every frame.
//
// Server to client:
//
//	{"type":"render","html":"...","url":"/app/settings/general"}
//
// # Example Usage
//
//	srv, err := server.New(&server.ServerConfig{
//	    Address: ":3000",
//	    Router:  demo.Routes(),
//	    Metrics: telemetry.NewMetrics(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.Run()
package server

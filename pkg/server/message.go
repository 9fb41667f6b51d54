package server

// Message types exchanged over the WebSocket. Every frame is one JSON
// object with a "type" field.
const (
	// MsgNavigate asks the session to navigate (client to server).
	MsgNavigate = "navigate"

	// MsgEvent reports a DOM event on an element with a hydration ID
	// (client to server).
	MsgEvent = "event"

	// MsgComplete reports that an exit overlay finished animating. It names
	// the outlet instance and snapshot id rendered on the overlay, so it
	// stays valid across frames (client to server).
	MsgComplete = "complete"

	// MsgRender carries a freshly rendered frame (server to client).
	MsgRender = "render"

	// MsgError reports a request the session could not serve (server to client).
	MsgError = "error"
)

// ClientMessage is a frame sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`

	// Path and Replace are set for MsgNavigate.
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`

	// HID and Name are set for MsgEvent. Name has no "on" prefix.
	HID  string `json:"hid,omitempty"`
	Name string `json:"name,omitempty"`

	// Outlet and Snapshot are set for MsgComplete.
	Outlet   string `json:"outlet,omitempty"`
	Snapshot int    `json:"snapshot"`
}

// ServerMessage is a frame sent to the browser.
type ServerMessage struct {
	Type string `json:"type"`

	// HTML is the rendered root content for MsgRender.
	HTML string `json:"html,omitempty"`

	// URL is the committed path plus query. The client pushes it onto the
	// history stack unless Replace is set.
	URL     string `json:"url,omitempty"`
	Replace bool   `json:"replace,omitempty"`

	// Message describes the failure for MsgError.
	Message string `json:"message,omitempty"`
}

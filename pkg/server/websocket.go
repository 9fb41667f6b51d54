package server

import (
	"encoding/json"
	"runtime/debug"
	"time"

	"github.com/gorilla/websocket"
)

// ReadLoop continuously reads messages from the WebSocket connection and
// queues them for the event loop. It blocks until the connection is closed
// or an error occurs.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				if s.metrics != nil {
					s.metrics.RecordWebSocketError("read")
				}
			}
			return
		}

		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		s.lastActive.Store(time.Now())
		s.bytesRecv.Add(uint64(len(data)))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Error("message decode error", "error", err)
			if s.metrics != nil {
				s.metrics.RecordWebSocketError("decode")
			}
			continue
		}
		s.QueueMessage(msg)
	}
}

// WriteLoop sends heartbeat pings until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

func (s *Session) sendPing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
}

// EventLoop processes queued client messages and dispatched callbacks. It
// is the only goroutine that touches the navigation system, and it tears
// that system down once the session is closed.
func (s *Session) EventLoop() {
	defer s.teardown()

	for {
		select {
		case msg := <-s.messages:
			s.step(func() { s.handleMessage(msg) })

		case fn := <-s.dispatchCh:
			s.step(func() {
				fn()
				s.flush()
			})

		case <-s.done:
			return
		}
	}
}

// step runs one unit of loop work with panic recovery.
func (s *Session) step(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event loop panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Start starts all session loops.
func (s *Session) Start() {
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

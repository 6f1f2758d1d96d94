package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// handleStream upgrades to a websocket and pushes every published snapshot.
// The current snapshot, if any, is sent first.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		s.logger.Warn(r.Context(), "WebSocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	snapshots, unsubscribe := s.market.Subscribe()
	defer unsubscribe()

	ctx := r.Context()
	s.logger.Debug(ctx, "Stream client connected", map[string]interface{}{"remote": r.RemoteAddr})

	// Reader detects the client going away; incoming messages are ignored.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if snap, ok := s.market.Snapshot(); ok {
		if err := s.writeMessage(conn, s.marketView(snap)); err != nil {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			s.logger.Debug(ctx, "Stream client disconnected", map[string]interface{}{"remote": r.RemoteAddr})
			return
		case snap, ok := <-snapshots:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "market closed"),
					time.Now().Add(time.Second))
				return
			}
			if err := s.writeMessage(conn, s.marketView(snap)); err != nil {
				s.logger.Debug(ctx, "Stream write failed", map[string]interface{}{"error": err.Error()})
				return
			}
		}
	}
}

func (s *Server) writeMessage(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	return conn.WriteJSON(v)
}

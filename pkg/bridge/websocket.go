package bridge

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// control is the only message a subscriber sends.
type control struct {
	Types []string `json:"types"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Warn("upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	sub := s.hub.Subscribe(splitTypes(r.URL.Query().Get("types"))...)
	logger := s.logger.With("subscriber", sub.ID, "request_id", middleware.GetReqID(r.Context()))
	logger.Info("subscriber connected", "remote", r.RemoteAddr)

	go s.readLoop(conn, sub)
	s.writeLoop(conn, sub)

	s.hub.Unsubscribe(sub)
	conn.Close()
	logger.Info("subscriber disconnected")
}

// readLoop applies filter updates until the socket fails.
func (s *Server) readLoop(conn *websocket.Conn, sub *Subscriber) {
	defer s.hub.Unsubscribe(sub)
	conn.SetReadLimit(64 << 10)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "subscriber", sub.ID, "error", err)
			}
			return
		}
		var c control
		if err := json.Unmarshal(msg, &c); err != nil {
			s.logger.Warn("bad control message", "subscriber", sub.ID, "error", err)
			continue
		}
		sub.SetTypes(c.Types)
	}
}

// writeLoop forwards events and heartbeats until the subscriber is
// removed or a write fails.
func (s *Server) writeLoop(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "unsubscribed"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug("write failed", "subscriber", sub.ID, "error", err)
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

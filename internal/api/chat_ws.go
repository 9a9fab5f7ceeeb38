package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsMaxMessage = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens via the bearer token middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsChatMessage struct {
	Message string `json:"message"`
}

type wsChatReply struct {
	Reply string `json:"reply"`
	Turns int    `json:"turns"`
	Error string `json:"error,omitempty"`
}

// handleChatWS upgrades to a websocket and runs the chat loop over it. Each
// inbound message is one user turn; the reply is written back on the same
// connection.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go s.wsPingLoop(conn, done)

	for {
		var msg wsChatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		if strings.TrimSpace(msg.Message) == "" {
			s.wsWrite(conn, wsChatReply{Error: "message is required"})
			continue
		}

		sess.AppendTurn("user", msg.Message)
		reply := s.svc.Chat(r.Context(), sess.Conversation())
		sess.AppendTurn("assistant", reply)

		if !s.wsWrite(conn, wsChatReply{Reply: reply, Turns: len(sess.Conversation())}) {
			return
		}
	}
}

func (s *Server) wsWrite(conn *websocket.Conn, v wsChatReply) bool {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(v); err != nil {
		s.log.Warn("websocket write failed", "error", err)
		return false
	}
	return true
}

func (s *Server) wsPingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

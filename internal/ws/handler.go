// Package ws adapts websocket connections to the hub: it parses inbound JSON
// into typed commands and drains the hub-side outbox back onto the wire.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/chitgames/chit-backend/internal/hub"
)

const (
	writeTimeout = 3 * time.Second
	outboxSize   = 32
	maxFrameSize = 4096
)

func Handler(h *hub.Hub, log *zap.Logger, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")
		conn.SetReadLimit(maxFrameSize)

		hc := hub.NewConn(outboxSize)

		// The hub learns about this connection lazily: the first
		// create_game/join_game attaches an identity, and exactly one
		// Disconnected is sent when the read loop ends.
		defer func() { h.Inbox() <- hub.Disconnected{Conn: hc} }()

		// Writer: drain the hub outbox until the hub closes it.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range hc.Outbox() {
				payload, err := json.Marshal(msg)
				if err != nil {
					log.Error("marshal outbound message", zap.Error(err))
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop: one parsed message at a time into the hub inbox.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Disconnected in the defer handles cleanup.
				return
			}

			cm, err := Decode(data)
			if err != nil {
				// Malformed payloads never crash the loop; tell the
				// sender and move on.
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"error","message":"`+err.Error()+`"}`))
				log.Debug("bad inbound payload", zap.Error(err))
				continue
			}

			h.Inbox() <- hub.FromClient{Conn: hc, Msg: cm}
		}
	}
}

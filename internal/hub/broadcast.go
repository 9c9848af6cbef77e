package hub

import (
	"github.com/chitgames/chit-backend/internal/game"
	"github.com/chitgames/chit-backend/internal/protocol"
)

// broadcast fans msg out to every current member of s, skipping exclude when
// non-empty. Delivery is fire-and-forget per recipient: a missing or slow
// connection never aborts delivery to the rest, and cleanup of dead members
// is the disconnect path's job.
func (h *Hub) broadcast(s *game.Session, msg protocol.ServerMessage, exclude string) {
	for _, p := range s.Players {
		if p.ID == exclude {
			continue
		}
		if c := h.reg.conn(p.ID); c != nil {
			c.send(msg)
		}
	}
}

// sendTo delivers msg to a single player if they are still connected.
func (h *Hub) sendTo(playerID string, msg protocol.ServerMessage) {
	if c := h.reg.conn(playerID); c != nil {
		c.send(msg)
	}
}

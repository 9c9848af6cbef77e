// Package hub hosts the authoritative session state. A single goroutine owns
// every session, so commands from all connections are applied one at a time
// in arrival order and no session mutation is ever partially visible.
package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/chitgames/chit-backend/internal/game"
	"github.com/chitgames/chit-backend/internal/protocol"
)

// Conn is one client connection as the hub sees it: an outbox the transport
// drains plus the player identity attached at create/join time. All fields
// other than the outbox channel are touched only by the hub goroutine.
type Conn struct {
	outbox chan protocol.ServerMessage
	player string
	closed bool
}

// NewConn allocates a connection handle with the given outbox buffer.
func NewConn(buffer int) *Conn {
	return &Conn{outbox: make(chan protocol.ServerMessage, buffer)}
}

// Outbox is drained by the transport's writer goroutine. It is closed when
// the hub is done with the connection.
func (c *Conn) Outbox() <-chan protocol.ServerMessage { return c.outbox }

// send is best-effort: a full outbox drops the message rather than stall
// command processing. Removal of dead connections happens on the close
// event, never here.
func (c *Conn) send(msg protocol.ServerMessage) bool {
	if c.closed {
		return false
	}
	select {
	case c.outbox <- msg:
		return true
	default:
		return false
	}
}

func (c *Conn) close() {
	if !c.closed {
		c.closed = true
		close(c.outbox)
	}
}

type Msg interface{ isHubMsg() }

// FromClient carries one parsed inbound message plus the connection it
// arrived on.
type FromClient struct {
	Conn *Conn
	Msg  protocol.ClientMessage
}

// Disconnected is sent exactly once by the transport when a connection's
// read loop ends; the hub treats it as leave_game.
type Disconnected struct{ Conn *Conn }

// Shutdown kicks every player and stops the loop.
type Shutdown struct{}

// Inspect is a test-only probe that reflects internal state without races.
type Inspect struct {
	Code  string
	Reply chan InspectView
}

type InspectView struct {
	Sessions int
	Found    bool
	Snapshot game.Snapshot
}

func (FromClient) isHubMsg()   {}
func (Disconnected) isHubMsg() {}
func (Shutdown) isHubMsg()     {}
func (Inspect) isHubMsg()      {}

type Hub struct {
	inbox  chan Msg
	reg    *registry
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan Msg, 64),
		reg:    newRegistry(),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- Msg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case FromClient:
				h.dispatch(msg.Conn, msg.Msg)

			case Disconnected:
				if msg.Conn.player != "" {
					h.removePlayer(msg.Conn.player)
				}
				msg.Conn.close()

			case Inspect:
				view := InspectView{Sessions: len(h.reg.sessions)}
				if s := h.reg.session(msg.Code); s != nil {
					view.Found = true
					view.Snapshot = s.Snapshot()
				}
				msg.Reply <- view

			case Shutdown:
				h.shutdown()
				return
			}
		}
	}
}

// shutdown tells every member they are being kicked, closes all outboxes,
// and drops all state.
func (h *Hub) shutdown() {
	for code, s := range h.reg.sessions {
		h.broadcast(s, protocol.ServerMessage{Type: protocol.EvtAllPlayersKicked}, "")
		h.log.Info("session closed on shutdown", zap.String("code", code))
	}
	for _, c := range h.reg.playerConn {
		c.close()
	}
	h.reg.clear()
	h.cancel()
}

package hub

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chitgames/chit-backend/internal/game"
	"github.com/chitgames/chit-backend/internal/protocol"
)

var errAlreadyInGame = errors.New("already in a game")
var errEmptyChat = errors.New("chat message is empty")
var errChatTooLong = errors.New("chat message is too long")

const maxChatLen = 500

// dispatch routes one inbound message. create/join attach identity to the
// connection; every other command requires it, so a connection that never
// joined cannot touch any session.
func (h *Hub) dispatch(c *Conn, m protocol.ClientMessage) {
	switch m.Type {
	case protocol.CmdCreateGame:
		h.createGame(c, m)
		return
	case protocol.CmdJoinGame:
		h.joinGame(c, m)
		return
	}

	if c.player == "" {
		h.log.Debug("command from unattached connection dropped", zap.String("type", m.Type))
		return
	}

	switch m.Type {
	case protocol.CmdToggleReady:
		h.toggleReady(c)
	case protocol.CmdAddChit:
		h.addChit(c, m)
	case protocol.CmdEditChit:
		h.editChit(c, m)
	case protocol.CmdRemoveChit:
		h.removeChit(c, m)
	case protocol.CmdStartGame:
		h.startGame(c)
	case protocol.CmdLeaveGame:
		h.removePlayer(c.player)
	case protocol.CmdKickPlayer:
		h.kickPlayer(c, m.TargetPlayerID)
	case protocol.CmdRestartGame:
		h.restartGame(c)
	case protocol.CmdSendChat:
		h.sendChat(c, m.Message)
	case protocol.CmdRequestRematch:
		h.requestRematch(c)
	case protocol.CmdRespondToRematch:
		h.respondToRematch(c, m)
	case protocol.CmdAllowChatTransition:
		h.allowChatTransition(c)
	default:
		h.log.Debug("unknown command dropped", zap.String("type", m.Type))
	}
}

// sendError reports a rejected command to the originating connection only.
// Session state is unchanged by the time this is called.
func (h *Hub) sendError(c *Conn, err error) {
	c.send(protocol.Error(err.Error()))
}

func (h *Hub) createGame(c *Conn, m protocol.ClientMessage) {
	if c.player != "" {
		h.sendError(c, errAlreadyInGame)
		return
	}
	if err := game.ValidateMaxPlayers(m.MaxPlayers); err != nil {
		h.sendError(c, err)
		return
	}
	code, err := h.reg.generateCode()
	if err != nil {
		h.sendError(c, err)
		return
	}
	s, host, err := game.NewSession(code, m.MaxPlayers, m.HostName)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.reg.add(s)
	h.reg.register(host.ID, code, c)
	c.player = host.ID

	c.send(protocol.ServerMessage{Type: protocol.EvtGameCreated, Code: code, PlayerID: host.ID})
	c.send(protocol.SessionUpdate(s.Snapshot()))
	h.log.Info("session created", zap.String("code", code), zap.Int("maxPlayers", m.MaxPlayers))
}

func (h *Hub) joinGame(c *Conn, m protocol.ClientMessage) {
	if c.player != "" {
		h.sendError(c, errAlreadyInGame)
		return
	}
	// Codes are case-insensitive on input.
	code := strings.ToUpper(m.Code)
	s := h.reg.session(code)
	if s == nil {
		h.sendError(c, game.ErrGameNotFound)
		return
	}
	p, err := s.AddPlayer(m.DisplayName)
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.reg.register(p.ID, code, c)
	c.player = p.ID

	c.send(protocol.ServerMessage{Type: protocol.EvtJoinedGame, PlayerID: p.ID, Session: snapshotPtr(s)})
	h.broadcast(s, protocol.SessionUpdate(s.Snapshot()), p.ID)
	h.log.Debug("player joined", zap.String("code", code), zap.String("player", p.ID))
}

func (h *Hub) toggleReady(c *Conn) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	if s.ToggleReady(c.player) {
		h.broadcast(s, protocol.SessionUpdate(s.Snapshot()), "")
	}
}

func (h *Hub) addChit(c *Conn, m protocol.ClientMessage) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	if _, err := s.AddChit(c.player, m.RoleName, m.Description); err != nil {
		h.sendError(c, err)
		return
	}
	h.broadcast(s, protocol.SessionUpdate(s.Snapshot()), "")
}

func (h *Hub) editChit(c *Conn, m protocol.ClientMessage) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	err := s.EditChit(c.player, m.ChitID, m.RoleName, m.Description)
	if errors.Is(err, game.ErrChitNotFound) {
		h.log.Debug("edit of missing chit ignored", zap.String("chit", m.ChitID))
		return
	}
	if err != nil {
		h.sendError(c, err)
		return
	}
	h.broadcast(s, protocol.SessionUpdate(s.Snapshot()), "")
}

func (h *Hub) removeChit(c *Conn, m protocol.ClientMessage) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	err := s.RemoveChit(c.player, m.ChitID)
	if errors.Is(err, game.ErrChitNotFound) {
		h.log.Debug("removal of missing chit ignored", zap.String("chit", m.ChitID))
		return
	}
	if err != nil {
		h.sendError(c, err)
		return
	}
	h.broadcast(s, protocol.SessionUpdate(s.Snapshot()), "")
}

// startGame runs the validate-and-assign sequence atomically on the hub
// goroutine, then delivers each player their own chit and nothing else.
func (h *Hub) startGame(c *Conn) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	assigned, err := s.Start(c.player)
	if err != nil {
		h.sendError(c, err)
		return
	}
	for id, chit := range assigned {
		chit := chit // per-iteration copy: required while building with Go < 1.22 loop semantics
		h.sendTo(id, protocol.ServerMessage{Type: protocol.EvtGameStarted, AssignedChit: &chit})
	}
	h.log.Info("game started", zap.String("code", s.Code), zap.Int("players", len(s.Players)))
}

// removePlayer is the single exit path shared by leave_game, kicks, and
// disconnects. It keeps the session roster and both registry indexes in
// step, migrates the host along stable join order, and deletes the session
// once the roster empties. Calling it again for the same player is a no-op.
func (h *Hub) removePlayer(playerID string) {
	s := h.reg.sessionFor(playerID)
	if s == nil {
		return
	}
	if c := h.reg.conn(playerID); c != nil {
		c.player = ""
	}
	newHostID, removed := s.RemovePlayer(playerID)
	h.reg.unregister(playerID)
	if !removed {
		return
	}

	if s.Empty() {
		h.reg.remove(s.Code)
		h.log.Info("session deleted", zap.String("code", s.Code))
		return
	}

	if newHostID != "" {
		h.broadcast(s, protocol.ServerMessage{Type: protocol.EvtHostChanged, NewHostID: newHostID}, "")
	}
	h.broadcast(s, protocol.ServerMessage{Type: protocol.EvtPlayerLeft, PlayerID: playerID}, "")
	h.broadcast(s, protocol.SessionUpdate(s.Snapshot()), "")
}

func (h *Hub) kickPlayer(c *Conn, targetID string) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	if s.HostID != c.player {
		h.sendError(c, game.ErrNotHost)
		return
	}
	if targetID == c.player {
		h.sendError(c, game.ErrCannotKickSelf)
		return
	}
	if s.FindPlayer(targetID) == nil {
		return
	}
	h.sendTo(targetID, protocol.Error("you have been kicked from the game"))
	h.removePlayer(targetID)
}

func (h *Hub) restartGame(c *Conn) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	if err := s.Restart(c.player); err != nil {
		h.sendError(c, err)
		return
	}
	h.broadcast(s, protocol.ServerMessage{Type: protocol.EvtGameRestarted}, "")
	h.broadcast(s, protocol.SessionUpdate(s.Snapshot()), "")
	h.log.Debug("game restarted", zap.String("code", s.Code))
}

func (h *Hub) sendChat(c *Conn, text string) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	sender := s.FindPlayer(c.player)
	if sender == nil {
		return
	}
	if text == "" {
		h.sendError(c, errEmptyChat)
		return
	}
	if len([]rune(text)) > maxChatLen {
		h.sendError(c, errChatTooLong)
		return
	}
	chat := &game.ChatMessage{
		ID:         uuid.NewString(),
		PlayerID:   sender.ID,
		PlayerName: sender.DisplayName,
		Message:    text,
		Timestamp:  time.Now().UnixMilli(),
	}
	h.broadcast(s, protocol.ServerMessage{Type: protocol.EvtChatMessage, ChatMessage: chat}, "")
}

func (h *Hub) requestRematch(c *Conn) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	requester := s.FindPlayer(c.player)
	if requester == nil {
		return
	}
	req := &game.RematchRequest{
		RequesterID:   requester.ID,
		RequesterName: requester.DisplayName,
		Timestamp:     time.Now().UnixMilli(),
	}
	h.broadcast(s, protocol.ServerMessage{Type: protocol.EvtRematchRequested, Request: req}, requester.ID)
}

// respondToRematch relays the decision to the whole session. The actual
// reset stays an explicit restart_game from the host.
func (h *Hub) respondToRematch(c *Conn, m protocol.ClientMessage) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	evt := protocol.EvtRematchDeclined
	if m.Accept {
		evt = protocol.EvtRematchAccepted
	}
	h.broadcast(s, protocol.ServerMessage{Type: evt, RequesterID: m.RequesterID}, "")
}

func (h *Hub) allowChatTransition(c *Conn) {
	s := h.reg.sessionFor(c.player)
	if s == nil {
		return
	}
	if s.HostID != c.player {
		h.sendError(c, game.ErrNotHost)
		return
	}
	h.broadcast(s, protocol.ServerMessage{Type: protocol.EvtChatTransitionAllowed}, "")
}

func snapshotPtr(s *game.Session) *game.Snapshot {
	snap := s.Snapshot()
	return &snap
}

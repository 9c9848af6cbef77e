// Package protocol defines the JSON wire format spoken over each websocket.
// Both directions use a single tagged struct: the "type" field selects the
// variant and the remaining fields are variant-specific. Field names match
// the original client (camelCase).
package protocol

import "github.com/chitgames/chit-backend/internal/game"

// Client -> server message types.
const (
	CmdCreateGame          = "create_game"
	CmdJoinGame            = "join_game"
	CmdToggleReady         = "toggle_ready"
	CmdAddChit             = "add_chit"
	CmdEditChit            = "edit_chit"
	CmdRemoveChit          = "remove_chit"
	CmdStartGame           = "start_game"
	CmdLeaveGame           = "leave_game"
	CmdKickPlayer          = "kick_player"
	CmdRestartGame         = "restart_game"
	CmdSendChat            = "send_chat"
	CmdRequestRematch      = "request_rematch"
	CmdRespondToRematch    = "respond_to_rematch"
	CmdAllowChatTransition = "allow_chat_transition"
)

// Server -> client message types.
const (
	EvtGameCreated           = "game_created"
	EvtJoinedGame            = "joined_game"
	EvtSessionUpdate         = "session_update"
	EvtGameStarted           = "game_started"
	EvtError                 = "error"
	EvtPlayerLeft            = "player_left"
	EvtHostChanged           = "host_changed"
	EvtGameRestarted         = "game_restarted"
	EvtChatMessage           = "chat_message"
	EvtRematchRequested      = "rematch_requested"
	EvtRematchAccepted       = "rematch_accepted"
	EvtRematchDeclined       = "rematch_declined"
	EvtChatTransitionAllowed = "chat_transition_allowed"
	EvtAllPlayersKicked      = "all_players_kicked"
)

type ClientMessage struct {
	Type string `json:"type"`

	// create_game
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	HostName   string `json:"hostName,omitempty"`

	// join_game
	Code        string `json:"code,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	// add_chit / edit_chit / remove_chit
	ChitID      string `json:"chitId,omitempty"`
	RoleName    string `json:"roleName,omitempty"`
	Description string `json:"description,omitempty"`

	// kick_player
	TargetPlayerID string `json:"targetPlayerId,omitempty"`

	// send_chat
	Message string `json:"message,omitempty"`

	// respond_to_rematch
	RequesterID string `json:"requesterId,omitempty"`
	Accept      bool   `json:"accept,omitempty"`
}

// KnownType reports whether the tag names a command this server handles.
func (m ClientMessage) KnownType() bool {
	switch m.Type {
	case CmdCreateGame, CmdJoinGame, CmdToggleReady,
		CmdAddChit, CmdEditChit, CmdRemoveChit,
		CmdStartGame, CmdLeaveGame, CmdKickPlayer, CmdRestartGame,
		CmdSendChat, CmdRequestRematch, CmdRespondToRematch,
		CmdAllowChatTransition:
		return true
	}
	return false
}

type ServerMessage struct {
	Type string `json:"type"`

	Code         string               `json:"code,omitempty"`
	PlayerID     string               `json:"playerId,omitempty"`
	Session      *game.Snapshot       `json:"session,omitempty"`
	AssignedChit *game.Chit           `json:"assignedChit,omitempty"`
	Message      string               `json:"message,omitempty"`
	NewHostID    string               `json:"newHostId,omitempty"`
	ChatMessage  *game.ChatMessage    `json:"chatMessage,omitempty"`
	Request      *game.RematchRequest `json:"request,omitempty"`
	RequesterID  string               `json:"requesterId,omitempty"`
}

// Error builds the error{message} event delivered to a single connection.
func Error(message string) ServerMessage {
	return ServerMessage{Type: EvtError, Message: message}
}

// SessionUpdate builds the full-snapshot event that replaces a client's
// local view.
func SessionUpdate(snap game.Snapshot) ServerMessage {
	return ServerMessage{Type: EvtSessionUpdate, Session: &snap}
}

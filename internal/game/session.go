package game

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")
var ErrGameStarted = errors.New("game already started")
var ErrGameFull = errors.New("game is full")
var ErrNotHost = errors.New("only the host can do that")
var ErrCannotKickSelf = errors.New("you cannot kick yourself")
var ErrChitCountMismatch = errors.New("chit count must equal player count")
var ErrNotAllReady = errors.New("all players must be ready")
var ErrNameRequired = errors.New("display name is required")
var ErrNameTooLong = errors.New("display name is too long")
var ErrRoleNameRequired = errors.New("role name is required")
var ErrRoleNameTooLong = errors.New("role name is too long")
var ErrDescriptionTooLong = errors.New("description is too long")
var ErrChitNotFound = errors.New("chit not found")
var ErrInvalidMaxPlayers = errors.New("maxPlayers must be between 2 and 20")

const (
	MinPlayers = 2
	MaxPlayers = 20

	maxDisplayNameLen = 30
	maxRoleNameLen    = 50
	maxDescriptionLen = 200
)

type Status string

const (
	StatusLobby    Status = "lobby"
	StatusStarted  Status = "started"
	StatusFinished Status = "finished"
)

// Chit is one labeled role card, handed out face-down at game start.
type Chit struct {
	ID          string `json:"id"`
	RoleName    string `json:"roleName"`
	Description string `json:"description,omitempty"`
}

type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IsHost      bool   `json:"isHost"`
	IsReady     bool   `json:"isReady"`

	// AssignedChit is set only while a game is running. It is deliberately
	// excluded from snapshots: each player learns their own chit through a
	// private game_started message and nothing else.
	AssignedChit *Chit `json:"-"`
}

// Session is one lobby/match identified by a short shareable code.
// Players is an ordered slice: insertion order decides host migration and
// the player side of role assignment.
type Session struct {
	Code       string
	HostID     string
	Players    []*Player
	Chits      []Chit
	MaxPlayers int
	Status     Status
	CreatedAt  time.Time
}

// Snapshot is the full session view broadcast to clients as session_update.
type Snapshot struct {
	Code       string    `json:"code"`
	HostID     string    `json:"hostId"`
	Players    []*Player `json:"players"`
	Chits      []Chit    `json:"chits"`
	MaxPlayers int       `json:"maxPlayers"`
	Status     Status    `json:"status"`
}

type ChatMessage struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type RematchRequest struct {
	RequesterID   string `json:"requesterId"`
	RequesterName string `json:"requesterName"`
	Timestamp     int64  `json:"timestamp"`
}

// NewSession builds a session in the lobby state with a single host player.
// Code uniqueness is the registry's problem; maxPlayers must already be
// validated by the caller.
func NewSession(code string, maxPlayers int, hostName string) (*Session, *Player, error) {
	if err := validateDisplayName(hostName); err != nil {
		return nil, nil, err
	}
	host := &Player{
		ID:          uuid.NewString(),
		DisplayName: hostName,
		IsHost:      true,
	}
	s := &Session{
		Code:       code,
		HostID:     host.ID,
		Players:    []*Player{host},
		Chits:      []Chit{},
		MaxPlayers: maxPlayers,
		Status:     StatusLobby,
		CreatedAt:  time.Now(),
	}
	return s, host, nil
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Code:       s.Code,
		HostID:     s.HostID,
		Players:    s.Players,
		Chits:      s.Chits,
		MaxPlayers: s.MaxPlayers,
		Status:     s.Status,
	}
}

// FindPlayer returns the member with the given id, or nil.
func (s *Session) FindPlayer(playerID string) *Player {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// AddPlayer joins a new non-host member to a lobby-state session.
func (s *Session) AddPlayer(displayName string) (*Player, error) {
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}
	if s.Status != StatusLobby {
		return nil, ErrGameStarted
	}
	if len(s.Players) >= s.MaxPlayers {
		return nil, ErrGameFull
	}
	p := &Player{
		ID:          uuid.NewString(),
		DisplayName: displayName,
	}
	s.Players = append(s.Players, p)
	return p, nil
}

// ToggleReady flips the ready flag. Unknown players are a no-op.
func (s *Session) ToggleReady(playerID string) bool {
	p := s.FindPlayer(playerID)
	if p == nil {
		return false
	}
	p.IsReady = !p.IsReady
	return true
}

// AddChit appends a new chit. Host-only, lobby-only.
func (s *Session) AddChit(playerID, roleName, description string) (*Chit, error) {
	if playerID != s.HostID {
		return nil, ErrNotHost
	}
	if s.Status != StatusLobby {
		return nil, ErrGameStarted
	}
	if err := validateChit(roleName, description); err != nil {
		return nil, err
	}
	s.Chits = append(s.Chits, Chit{
		ID:          uuid.NewString(),
		RoleName:    roleName,
		Description: description,
	})
	return &s.Chits[len(s.Chits)-1], nil
}

// EditChit replaces a chit's role name and description, preserving its id.
func (s *Session) EditChit(playerID, chitID, roleName, description string) error {
	if playerID != s.HostID {
		return ErrNotHost
	}
	if s.Status != StatusLobby {
		return ErrGameStarted
	}
	if err := validateChit(roleName, description); err != nil {
		return err
	}
	for i := range s.Chits {
		if s.Chits[i].ID == chitID {
			s.Chits[i].RoleName = roleName
			s.Chits[i].Description = description
			return nil
		}
	}
	return ErrChitNotFound
}

// RemoveChit filters out the chit with the given id.
func (s *Session) RemoveChit(playerID, chitID string) error {
	if playerID != s.HostID {
		return ErrNotHost
	}
	if s.Status != StatusLobby {
		return ErrGameStarted
	}
	for i := range s.Chits {
		if s.Chits[i].ID == chitID {
			s.Chits = append(s.Chits[:i], s.Chits[i+1:]...)
			return nil
		}
	}
	return ErrChitNotFound
}

// Start validates readiness and chit count, draws an unbiased random
// bijection between players and chits, and moves the session to started.
// The returned map is playerID -> assigned chit so the caller can deliver
// each player their own chit privately.
func (s *Session) Start(playerID string) (map[string]Chit, error) {
	if playerID != s.HostID {
		return nil, ErrNotHost
	}
	if s.Status != StatusLobby {
		return nil, ErrGameStarted
	}
	if len(s.Chits) != len(s.Players) {
		return nil, ErrChitCountMismatch
	}
	for _, p := range s.Players {
		if !p.IsReady {
			return nil, ErrNotAllReady
		}
	}

	assigned := AssignChits(s.Players, s.Chits)
	for _, p := range s.Players {
		chit := assigned[p.ID]
		p.AssignedChit = &chit
	}
	s.Status = StatusStarted
	return assigned, nil
}

// Restart returns a started (or finished) session to the lobby: chits are
// cleared and every player's readiness and assignment reset.
func (s *Session) Restart(playerID string) error {
	if playerID != s.HostID {
		return ErrNotHost
	}
	s.Status = StatusLobby
	s.Chits = []Chit{}
	for _, p := range s.Players {
		p.IsReady = false
		p.AssignedChit = nil
	}
	return nil
}

// RemovePlayer drops a member from the roster. If the host left and members
// remain, the earliest-joined survivor is promoted and its id returned.
// Removing an unknown player is a no-op.
func (s *Session) RemovePlayer(playerID string) (newHostID string, removed bool) {
	idx := -1
	for i, p := range s.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", false
	}
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)

	if s.HostID == playerID && len(s.Players) > 0 {
		next := s.Players[0]
		next.IsHost = true
		s.HostID = next.ID
		return next.ID, true
	}
	return "", true
}

// Empty reports whether the roster has emptied, at which point the
// registry deletes the session.
func (s *Session) Empty() bool { return len(s.Players) == 0 }

func validateDisplayName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len([]rune(name)) > maxDisplayNameLen {
		return ErrNameTooLong
	}
	return nil
}

func validateChit(roleName, description string) error {
	if roleName == "" {
		return ErrRoleNameRequired
	}
	if len([]rune(roleName)) > maxRoleNameLen {
		return ErrRoleNameTooLong
	}
	if len([]rune(description)) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateMaxPlayers is a caller-side check performed before any session is
// created.
func ValidateMaxPlayers(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return ErrInvalidMaxPlayers
	}
	return nil
}

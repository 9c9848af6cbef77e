package hub

import (
	"crypto/rand"
	"math/big"

	"github.com/chitgames/chit-backend/internal/game"
)

// codeAlphabet excludes the visually ambiguous glyphs 0, O, 1, and I.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// registry owns the three lookup tables of the server: session code to
// session, player to session code, and player to connection. All access
// happens on the hub goroutine.
type registry struct {
	sessions      map[string]*game.Session
	playerSession map[string]string
	playerConn    map[string]*Conn
}

func newRegistry() *registry {
	return &registry{
		sessions:      make(map[string]*game.Session),
		playerSession: make(map[string]string),
		playerConn:    make(map[string]*Conn),
	}
}

// generateCode draws a fresh 6-character code, resampling on collision. The
// keyspace (32^6) is large relative to concurrent session count, so the loop
// terminates quickly in practice.
func (r *registry) generateCode() (string, error) {
	for {
		code := make([]byte, codeLength)
		for i := range code {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", err
			}
			code[i] = codeAlphabet[n.Int64()]
		}
		if _, taken := r.sessions[string(code)]; !taken {
			return string(code), nil
		}
	}
}

func (r *registry) session(code string) *game.Session {
	return r.sessions[code]
}

// sessionFor resolves a player's session, or nil if the player is not
// currently a member anywhere.
func (r *registry) sessionFor(playerID string) *game.Session {
	code, ok := r.playerSession[playerID]
	if !ok {
		return nil
	}
	return r.sessions[code]
}

func (r *registry) conn(playerID string) *Conn {
	return r.playerConn[playerID]
}

// register adds both index entries for a player in the same step as the
// session mutation that admitted them.
func (r *registry) register(playerID, code string, c *Conn) {
	r.playerSession[playerID] = code
	r.playerConn[playerID] = c
}

// unregister removes both index entries; stale entries would otherwise keep
// the broadcaster fanning out to gone players.
func (r *registry) unregister(playerID string) {
	delete(r.playerSession, playerID)
	delete(r.playerConn, playerID)
}

func (r *registry) add(s *game.Session) {
	r.sessions[s.Code] = s
}

func (r *registry) remove(code string) {
	delete(r.sessions, code)
}

func (r *registry) clear() {
	clear(r.sessions)
	clear(r.playerSession)
	clear(r.playerConn)
}

package ws

import (
	"encoding/json"
	"errors"

	"github.com/chitgames/chit-backend/internal/protocol"
)

var errBadJSON = errors.New("bad json")
var errUnknownType = errors.New("unknown message type")

// Decode parses one inbound frame into a client message. Unknown tags are a
// recoverable validation error; the dispatch loop never sees them.
func Decode(data []byte) (protocol.ClientMessage, error) {
	var cm protocol.ClientMessage
	if err := json.Unmarshal(data, &cm); err != nil {
		return protocol.ClientMessage{}, errBadJSON
	}
	if !cm.KnownType() {
		return protocol.ClientMessage{}, errUnknownType
	}
	return cm, nil
}

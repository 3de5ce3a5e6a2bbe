package rikker

import (
	uuid "github.com/satori/go.uuid"

	"github.com/JoepDriesen/Rikker/protocol"
)

// Player represents a human participant reachable over some transport.
// Decisions for seats without a registered Decider are relayed to the
// corresponding Player, who must answer through the engine's operations.
type Player interface {
	ID() string
	Name() string
	Send(msg protocol.OutboundMessage) error
}

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

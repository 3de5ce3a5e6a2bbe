package protocol

// Phase names the decision a notification is asking for
type Phase int

const (
	Bidding Phase = iota
	Finalizing
	Playing
	Collecting
	RoundOver
)

var phaseNames = []string{
	"Bidding",
	"Finalizing",
	"Playing",
	"Collecting",
	"RoundOver",
}

func (p Phase) String() string {
	if p < Bidding || int(p) >= len(phaseNames) {
		return "?"
	}
	return phaseNames[p]
}

// Notification tells the registered decision-maker that the engine is
// waiting on a player. It carries no default behaviour: whoever consumes
// it must eventually invoke the matching engine operation, or the game
// stays stalled.
type Notification struct {
	GameID string
	Round  int
	Trick  int // -1 outside the trick-taking phase
	Seat   int
	Phase  Phase
}

// PlayerInfo represents a player at the engine boundary
type PlayerInfo struct {
	PlayerID string
	Name     string
}

// Cmd represents a command sent to a player
type Cmd int

const (
	NewJoiner Cmd = iota
	HasStarted
	DecisionNeeded
	Rejected
	RoundFinished
)

var cmdNames = []string{
	"NewJoiner",
	"HasStarted",
	"DecisionNeeded",
	"Rejected",
	"RoundFinished",
}

func (c Cmd) String() string {
	if c < NewJoiner || int(c) >= len(cmdNames) {
		return "?"
	}
	return cmdNames[c]
}

// OutboundMessage is a message sent to a player
type OutboundMessage struct {
	Cmd      Cmd           `json:"command"`
	PlayerID string        `json:"player_id"`
	Name     string        `json:"name,omitempty"`
	Hand     []string      `json:"hand,omitempty"` // card identifiers
	Scores   []int         `json:"scores,omitempty"`
	Note     *Notification `json:"notification,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// InboundMessage is a command received from a player
type InboundMessage struct {
	PlayerID string `json:"player_id"`
	Command  string `json:"command"`
	Bid      int    `json:"bid,omitempty"`
	Trump    string `json:"trump,omitempty"` // suit letter
	Mate     string `json:"mate,omitempty"`  // suit letter
	Card     string `json:"card,omitempty"`  // card identifier
}

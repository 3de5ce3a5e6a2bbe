package rikker

import (
	"errors"
	"log"

	"github.com/JoepDriesen/Rikker/deck"
	"github.com/JoepDriesen/Rikker/game"
	"github.com/JoepDriesen/Rikker/protocol"
)

var (
	ErrNilGame       = errors.New("game is nil")
	ErrUnknownPlayer = errors.New("player is not part of this game")
)

// maxDecisionAttempts bounds a Decider's retries for a single
// notification before the engine gives up and stalls the game
const maxDecisionAttempts = 64

// Decider supplies one legal move in response to a decision notification.
// When the engine rejects the move, Act is invoked again, and the Decider
// must try a different legal move rather than repeat the rejected one.
type Decider interface {
	Act(g *game.Game, n protocol.Notification) error
}

// GameEngine wires one game to its players and decision-makers. Every
// phase transition inside the game emits a notification onto the engine's
// own channel; the listener goroutine routes it to the registered Decider
// for that seat, or relays it to the player's transport.
type GameEngine struct {
	id        string
	creatorID string
	game      *game.Game
	players   map[string]Player
	deciders  map[game.Seat]Decider

	notifyCh    chan protocol.Notification
	registerCh  chan Player
	broadcastCh chan protocol.OutboundMessage
}

// GameEngineOpts are the options for constructing a GameEngine
type GameEngineOpts struct {
	GameID    string
	CreatorID string
	Players   [game.NumSeats]protocol.PlayerInfo
	Deciders  map[game.Seat]Decider
	Seed      int64
}

// NewGameEngine constructs a GameEngine and starts its listener
func NewGameEngine(opts GameEngineOpts) (*GameEngine, error) {
	engine := &GameEngine{
		id:         opts.GameID,
		creatorID:  opts.CreatorID,
		players:    map[string]Player{},
		deciders:   map[game.Seat]Decider{},
		notifyCh:    make(chan protocol.Notification),
		registerCh:  make(chan Player),
		broadcastCh: make(chan protocol.OutboundMessage),
	}
	for seat, d := range opts.Deciders {
		engine.deciders[seat] = d
	}

	g, err := game.New(game.Opts{
		ID:      opts.GameID,
		Players: opts.Players,
		Seed:    opts.Seed,
		Notify:  engine.enqueue,
	})
	if err != nil {
		return nil, err
	}
	engine.game = g

	go engine.Listen()

	return engine, nil
}

// ID returns the game's identifier
func (ge *GameEngine) ID() string {
	return ge.id
}

// CreatorID returns the ID of the player who created the game
func (ge *GameEngine) CreatorID() string {
	return ge.creatorID
}

// Game returns the underlying game
func (ge *GameEngine) Game() *game.Game {
	return ge.game
}

// AddPlayer attaches a player transport to the engine
func (ge *GameEngine) AddPlayer(p Player) error {
	if _, ok := ge.game.SeatOf(p.ID()); !ok {
		return ErrUnknownPlayer
	}
	ge.registerCh <- p
	return nil
}

// enqueue hands a notification to the listener without blocking the
// engine operation that produced it
func (ge *GameEngine) enqueue(n protocol.Notification) {
	go func() { ge.notifyCh <- n }()
}

// Listen routes registrations and decision notifications. It runs for
// the lifetime of the engine.
func (ge *GameEngine) Listen() {
	for {
		select {
		case p := <-ge.registerCh:
			ge.players[p.ID()] = p
			ge.broadcast(protocol.OutboundMessage{
				Cmd:      protocol.NewJoiner,
				PlayerID: p.ID(),
				Name:     p.Name(),
			})

		case n := <-ge.notifyCh:
			ge.dispatch(n)

		case msg := <-ge.broadcastCh:
			ge.broadcast(msg)
		}
	}
}

// dispatch routes one decision notification to its seat's Decider, or
// relays it to the player's transport
func (ge *GameEngine) dispatch(n protocol.Notification) {
	if n.Phase == protocol.RoundOver {
		scores := ge.game.Scores()
		ge.broadcast(protocol.OutboundMessage{
			Cmd:    protocol.RoundFinished,
			Scores: scores[:],
		})
		return
	}

	seat := game.Seat(n.Seat)

	if decider, ok := ge.deciders[seat]; ok {
		for attempt := 0; attempt < maxDecisionAttempts; attempt++ {
			err := decider.Act(ge.game, n)
			if err == nil {
				return
			}
			if errors.Is(err, game.ErrWrongPhase) {
				// Another actor got there first; the notification is stale
				return
			}
		}
		log.Printf("game %s: decider for seat %d gave up on %s", ge.id, n.Seat, n.Phase)
		return
	}

	info := ge.game.Player(seat)
	p, ok := ge.players[info.PlayerID]
	if !ok {
		return
	}

	scores := ge.game.Scores()
	msg := protocol.OutboundMessage{
		Cmd:      protocol.DecisionNeeded,
		PlayerID: info.PlayerID,
		Name:     info.Name,
		Hand:     handIdentifiers(ge.game.Hand(seat)),
		Scores:   scores[:],
		Note:     &n,
	}
	if err := p.Send(msg); err != nil {
		log.Printf("game %s: sending to player %s: %v", ge.id, info.PlayerID, err)
	}
}

// broadcast sends a message to every attached player. Only the listener
// goroutine may call it; everyone else goes through broadcastCh.
func (ge *GameEngine) broadcast(msg protocol.OutboundMessage) {
	for _, p := range ge.players {
		if err := p.Send(msg); err != nil {
			log.Printf("game %s: sending to player %s: %v", ge.id, p.ID(), err)
		}
	}
}

// Start begins the first round
func (ge *GameEngine) Start() error {
	if ge.game == nil {
		return ErrNilGame
	}
	if err := ge.game.StartRound(); err != nil {
		return err
	}
	ge.broadcastCh <- protocol.OutboundMessage{Cmd: protocol.HasStarted}
	return nil
}

// Receive applies a player's command to the game
func (ge *GameEngine) Receive(msg protocol.InboundMessage) error {
	seat, ok := ge.game.SeatOf(msg.PlayerID)
	if !ok {
		return ErrUnknownPlayer
	}

	switch msg.Command {
	case "bid":
		return ge.game.PlaceBid(seat, game.BidValue(msg.Bid))
	case "finalize":
		trump, err := parseSuit(msg.Trump)
		if err != nil {
			return err
		}
		mate, err := parseSuit(msg.Mate)
		if err != nil {
			return err
		}
		return ge.game.FinalizeBid(seat, trump, mate)
	case "play":
		card, err := deck.ParseIdentifier(msg.Card)
		if err != nil {
			return err
		}
		return ge.game.PlayCard(seat, card)
	case "collect":
		return ge.game.Collect(seat)
	case "start":
		return ge.Start()
	default:
		return errors.New("unknown command: " + msg.Command)
	}
}

func parseSuit(letter string) (*deck.Suit, error) {
	if letter == "" {
		return nil, nil
	}
	for _, suit := range deck.Suits() {
		if suit.Letter() == letter {
			s := suit
			return &s, nil
		}
	}
	return nil, errors.New("unknown suit letter: " + letter)
}

func handIdentifiers(hand []deck.Card) []string {
	ids := make([]string, len(hand))
	for i, c := range hand {
		ids[i] = c.Identifier()
	}
	return ids
}

package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/JoepDriesen/Rikker/deck"
	"github.com/JoepDriesen/Rikker/protocol"
)

// NumSeats is the number of players at the table
const NumSeats = 4

// StartingScore is every player's running score at the start of a game
const StartingScore = 100

// dealOrder is the batch sizes cards are handed out in, one batch per
// seat per pass, thirteen cards in total
var dealOrder = [...]int{4, 4, 5}

// Seat is a fixed position at the table, 0-3, held for the lifetime of a
// game. Turn order is always ascending seat order modulo four.
type Seat int

// Next returns the seat to this seat's left
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// State represents where a game stands between rounds
type State int

const (
	BeforeRound State = iota
	DuringRound
	AfterRound
)

var stateNames = []string{"BeforeRound", "DuringRound", "AfterRound"}

func (s State) String() string {
	if s < BeforeRound || int(s) >= len(stateNames) {
		return "?"
	}
	return stateNames[s]
}

// PlayerState tracks one seat's identity, running score and hand
type PlayerState struct {
	ID    string
	Name  string
	Score int
	Hand  []deck.Card
}

// Game owns the rounds played at one table of four players. All
// state-mutating operations take the game's own mutex, so operations on
// the same game never interleave while independent games run in parallel.
type Game struct {
	mu sync.Mutex

	id      string
	players [NumSeats]*PlayerState
	deck    deck.Deck
	rng     *rand.Rand

	current     *Round
	roundNumber int

	notify func(protocol.Notification)
}

// Opts are the options for constructing a Game
type Opts struct {
	ID      string
	Players [NumSeats]protocol.PlayerInfo
	Seed    int64
	Notify  func(protocol.Notification)
}

// New constructs a game with a freshly shuffled deck and all scores at
// the starting value
func New(opts Opts) (*Game, error) {
	cards, err := deck.New()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		id:     opts.ID,
		deck:   cards,
		rng:    rand.New(rand.NewSource(seed)),
		notify: opts.Notify,
	}
	for seat, info := range opts.Players {
		g.players[seat] = &PlayerState{
			ID:    info.PlayerID,
			Name:  info.Name,
			Score: StartingScore,
		}
	}
	g.deck.Shuffle(g.rng)

	return g, nil
}

// ID returns the game's identifier
func (g *Game) ID() string {
	return g.id
}

// withLock runs fn under the game mutex and, if it succeeds, emits the
// next pending decision notification after the lock is released. Emitting
// outside the lock lets a consumer call straight back into the engine.
func (g *Game) withLock(fn func() error) error {
	g.mu.Lock()
	err := fn()
	var note *protocol.Notification
	if err == nil {
		note = g.nextDecision()
		if note == nil && g.stateLocked() == AfterRound {
			note = &protocol.Notification{
				GameID: g.id,
				Round:  g.roundNumber,
				Trick:  -1,
				Seat:   int(g.current.Dealer),
				Phase:  protocol.RoundOver,
			}
		}
	}
	g.mu.Unlock()

	if err == nil && note != nil && g.notify != nil {
		g.notify(*note)
	}
	return err
}

// nextDecision computes the decision the game is currently waiting on.
// Must be called with the mutex held.
func (g *Game) nextDecision() *protocol.Notification {
	r := g.current
	if r == nil {
		return nil
	}

	note := protocol.Notification{GameID: g.id, Round: g.roundNumber, Trick: -1}
	switch r.Phase() {
	case Bidding:
		seat, more := r.NextBidder()
		if !more {
			return nil
		}
		note.Seat = int(seat)
		note.Phase = protocol.Bidding

	case FinalizingContract:
		note.Seat = int(r.HighestBid.Seat)
		note.Phase = protocol.Finalizing

	case PlayingTricks:
		trick, err := r.CurrentTrick()
		if err != nil {
			return nil
		}
		note.Trick = trick.Number
		if seat, more := trick.NextPlayer(); more {
			note.Seat = int(seat)
			note.Phase = protocol.Playing
		} else {
			winner, err := trick.Winner(r.trumpSuit())
			if err != nil {
				return nil
			}
			note.Seat = int(winner)
			note.Phase = protocol.Collecting
		}

	default:
		return nil
	}
	return &note
}

// NextDecision returns the decision the game is waiting on, if any
func (g *Game) NextDecision() (protocol.Notification, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	note := g.nextDecision()
	if note == nil {
		return protocol.Notification{}, false
	}
	return *note, true
}

// State returns where the game stands between rounds
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Game) stateLocked() State {
	if g.current == nil {
		return BeforeRound
	}
	if g.current.Phase() != RoundComplete {
		return DuringRound
	}
	return AfterRound
}

// CurrentRound returns the round in progress, or nil. The caller must
// treat it as read-only; all mutation goes through the Game.
func (g *Game) CurrentRound() *Round {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// RoundNumber returns the number of rounds started so far
func (g *Game) RoundNumber() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roundNumber
}

// Scores returns every seat's running score
func (g *Game) Scores() [NumSeats]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	var scores [NumSeats]int
	for seat, p := range g.players {
		scores[seat] = p.Score
	}
	return scores
}

// Hand returns a copy of the given seat's hand
func (g *Game) Hand(seat Seat) []deck.Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand := make([]deck.Card, len(g.players[seat].Hand))
	copy(hand, g.players[seat].Hand)
	return hand
}

// Player returns the identity of the player in the given seat
func (g *Game) Player(seat Seat) protocol.PlayerInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.players[seat]
	return protocol.PlayerInfo{PlayerID: p.ID, Name: p.Name}
}

// SeatOf resolves a player ID to a seat
func (g *Game) SeatOf(playerID string) (Seat, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for seat, p := range g.players {
		if p.ID == playerID {
			return Seat(seat), true
		}
	}
	return 0, false
}

// nextDealer returns the seat dealing the upcoming round. Seat 0 deals
// the first round; the deal rotates one seat per round.
func (g *Game) nextDealer() Seat {
	return Seat(g.roundNumber % NumSeats)
}

// deal clears all hands and distributes the deck in the fixed batch
// order, starting at the seat after the dealer. Must be called with the
// mutex held.
func (g *Game) deal(dealer Seat) error {
	if len(g.deck) != deck.Size {
		return fmt.Errorf("dealing with %d cards in the deck, expected %d", len(g.deck), deck.Size)
	}

	for _, p := range g.players {
		p.Hand = nil
	}
	for _, batch := range dealOrder {
		seat := dealer.Next()
		for i := 0; i < NumSeats; i++ {
			p := g.players[seat]
			p.Hand = append(p.Hand, g.deck.Deal(batch)...)
			seat = seat.Next()
		}
	}
	return nil
}

// StartRound starts the next round: the dealer rotates, every player's
// score is snapshotted, hands are dealt and bidding opens. A finished
// round still awaiting FinishRound is finished first.
func (g *Game) StartRound() error {
	return g.withLock(func() error {
		if g.stateLocked() == AfterRound {
			if err := g.finishRoundLocked(); err != nil {
				return err
			}
		}
		if g.stateLocked() != BeforeRound {
			return fmt.Errorf("%w: cannot start a round while one is underway", ErrWrongPhase)
		}

		round := &Round{Dealer: g.nextDealer()}
		for seat, p := range g.players {
			round.StartScores[seat] = p.Score
		}

		if err := g.deal(round.Dealer); err != nil {
			return err
		}
		g.current = round
		g.roundNumber++
		return nil
	})
}

// FinishRound applies the finished round's score deltas and returns all
// cards to the deck, ready for the next deal
func (g *Game) FinishRound() error {
	return g.withLock(func() error {
		return g.finishRoundLocked()
	})
}

func (g *Game) finishRoundLocked() error {
	if g.stateLocked() != AfterRound {
		return fmt.Errorf("%w: cannot finish a round that is not complete", ErrWrongPhase)
	}
	round := g.current

	for seat, p := range g.players {
		points, err := round.PointsFor(Seat(seat))
		if err != nil {
			return err
		}
		p.Score += points
	}

	// Rebuild the deck: collected tricks from last to first, each trick's
	// cards in reverse play order, then any cards still in hands when the
	// round resolved early.
	cards := make(deck.Deck, 0, deck.Size)
	for i := len(round.Tricks) - 1; i >= 0; i-- {
		plays := round.Tricks[i].Plays
		for j := len(plays) - 1; j >= 0; j-- {
			cards = append(cards, plays[j].Card)
		}
	}
	for _, p := range g.players {
		cards = append(cards, p.Hand...)
		p.Hand = nil
	}
	if len(cards) != deck.Size {
		return fmt.Errorf("reconstituted deck holds %d cards, expected %d", len(cards), deck.Size)
	}

	g.deck = cards
	g.current = nil
	return nil
}

// PlaceBid places a bid for the given seat
func (g *Game) PlaceBid(seat Seat, value BidValue) error {
	return g.withLock(func() error {
		if g.current == nil {
			return fmt.Errorf("%w: no round in progress", ErrWrongPhase)
		}
		return g.current.PlaceBid(seat, value)
	})
}

// FinalizeBid resolves the winning bid's trump suit and, for partnership
// contracts, runs the mate search against the bidder's hand. On success
// the mate seat is resolved from whoever holds the mate card.
func (g *Game) FinalizeBid(seat Seat, trump, mate *deck.Suit) error {
	return g.withLock(func() error {
		if g.current == nil {
			return fmt.Errorf("%w: no round in progress", ErrWrongPhase)
		}

		mateCard, err := g.current.finalize(seat, trump, mate, g.players[seat].Hand)
		if err != nil {
			return err
		}
		if mateCard != nil {
			holder, found := g.holderOf(*mateCard)
			if !found {
				return fmt.Errorf("mate card %s is in nobody's hand", mateCard)
			}
			g.current.Mate = &holder
		}
		return nil
	})
}

func (g *Game) holderOf(card deck.Card) (Seat, bool) {
	for seat, p := range g.players {
		if handContains(p.Hand, card) {
			return Seat(seat), true
		}
	}
	return 0, false
}

// PlayCard plays a card from the given seat's hand into the current trick
func (g *Game) PlayCard(seat Seat, card deck.Card) error {
	return g.withLock(func() error {
		if g.current == nil {
			return fmt.Errorf("%w: no round in progress", ErrWrongPhase)
		}

		trick, err := g.current.CurrentTrick()
		if err != nil {
			return err
		}

		p := g.players[seat]
		if err := trick.play(seat, card, p.Hand); err != nil {
			return err
		}
		for i, c := range p.Hand {
			if c == card {
				p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
				break
			}
		}
		return nil
	})
}

// Collect lets the winner of a decided trick take it in, which makes them
// the leader of the next trick or, after the thirteenth, ends the round.
func (g *Game) Collect(seat Seat) error {
	return g.withLock(func() error {
		if g.current == nil {
			return fmt.Errorf("%w: no round in progress", ErrWrongPhase)
		}

		trick, err := g.current.CurrentTrick()
		if err != nil {
			return err
		}
		return trick.collect(seat, g.current.trumpSuit())
	})
}

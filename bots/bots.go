// Package bots implements a decision-making collaborator that answers
// engine notifications with legal moves. It plays to keep a game moving,
// not to win: it passes whenever it may, picks the first workable
// contract details, and plays the first card the engine accepts.
package bots

import (
	"errors"
	"fmt"

	"github.com/JoepDriesen/Rikker/deck"
	"github.com/JoepDriesen/Rikker/game"
	"github.com/JoepDriesen/Rikker/protocol"
)

// Bot makes moves for a single seat
type Bot struct {
	Seat game.Seat
}

// New constructs a bot for the given seat
func New(seat game.Seat) *Bot {
	return &Bot{Seat: seat}
}

// Act answers one decision notification with a legal move. A rejected
// move is replaced by the next candidate rather than surfaced, so a
// single call settles the decision.
func (b *Bot) Act(g *game.Game, n protocol.Notification) error {
	if game.Seat(n.Seat) != b.Seat {
		return nil
	}

	switch n.Phase {
	case protocol.Bidding:
		return b.bid(g)
	case protocol.Finalizing:
		return b.finalize(g)
	case protocol.Playing:
		return b.play(g)
	case protocol.Collecting:
		return g.Collect(b.Seat)
	default:
		return fmt.Errorf("no move for phase %s", n.Phase)
	}
}

// bid passes unless passing is forbidden, in which case the weakest
// contract still placeable is bid
func (b *Bot) bid(g *game.Game) error {
	err := g.PlaceBid(b.Seat, game.Pass)
	if !errors.Is(err, game.ErrMustBid) {
		return err
	}

	for _, value := range game.BidValues() {
		err = g.PlaceBid(b.Seat, value)
		if !errors.Is(err, game.ErrBidTooLow) {
			return err
		}
	}
	return err
}

// finalize tries trump and mate suit combinations until the engine
// accepts one
func (b *Bot) finalize(g *game.Game) error {
	round := g.CurrentRound()
	if round == nil || round.HighestBid == nil {
		return fmt.Errorf("%w: nothing to finalize", game.ErrWrongPhase)
	}
	value := round.HighestBid.Value

	if !value.TrumpNeeded() {
		return g.FinalizeBid(b.Seat, nil, nil)
	}

	suits := deck.Suits()
	if !value.MateNeeded() {
		var err error
		for _, trump := range suits {
			t := trump
			if err = g.FinalizeBid(b.Seat, &t, nil); err == nil {
				return nil
			}
		}
		return err
	}

	var err error
	for _, trump := range suits {
		for _, mate := range suits {
			t, m := trump, mate
			if err = g.FinalizeBid(b.Seat, &t, &m); err == nil {
				return nil
			}
		}
	}
	return err
}

// play tries the cards in hand until one is a legal play
func (b *Bot) play(g *game.Game) error {
	var err error
	for _, card := range g.Hand(b.Seat) {
		err = g.PlayCard(b.Seat, card)
		if err == nil {
			return nil
		}
		if !errors.Is(err, game.ErrMustFollowSuit) {
			return err
		}
	}
	return err
}

// RunRound drives a game with a bot in every seat until the current
// round completes. It is used by the CLI and by tests; a served game is
// driven by the engine's listener instead.
func RunRound(g *game.Game, table [game.NumSeats]*Bot) error {
	for {
		if g.State() != game.DuringRound {
			return nil
		}
		n, ok := g.NextDecision()
		if !ok {
			return nil
		}
		if err := table[n.Seat].Act(g, n); err != nil {
			return err
		}
	}
}

// Table constructs one bot per seat
func Table() [game.NumSeats]*Bot {
	var table [game.NumSeats]*Bot
	for seat := range table {
		table[seat] = New(game.Seat(seat))
	}
	return table
}

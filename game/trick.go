package game

import (
	"fmt"

	"github.com/JoepDriesen/Rikker/deck"
)

// Play is a single card played into a trick
type Play struct {
	Seat Seat
	Card deck.Card
}

// Trick represents one of the thirteen tricks of a round. Play moves in
// seat order from the leader; once all four cards are down the trick is
// decided, and it blocks the next trick until its winner collects it.
type Trick struct {
	Number        int
	Leader        Seat
	RequestedSuit *deck.Suit
	Plays         []Play
	Collected     bool
}

// NextPlayer returns the seat expected to play next. The second return
// is false once all four seats have played.
func (t *Trick) NextPlayer() (Seat, bool) {
	if len(t.Plays) >= NumSeats {
		return 0, false
	}
	seat := t.Leader
	for i := 0; i < len(t.Plays); i++ {
		seat = seat.Next()
	}
	return seat, true
}

// Done reports whether all four cards have been played
func (t *Trick) Done() bool {
	_, more := t.NextPlayer()
	return !more
}

// play appends a card for the given seat after checking turn order and
// follow-suit legality against the player's hand
func (t *Trick) play(seat Seat, card deck.Card, hand []deck.Card) error {
	next, more := t.NextPlayer()
	if !more {
		return fmt.Errorf("%w: trick %d is already decided", ErrWrongPhase, t.Number)
	}
	if next != seat {
		return ErrOutOfTurn
	}
	if !handContains(hand, card) {
		return ErrCardNotOwned
	}

	if t.RequestedSuit == nil {
		suit := card.Suit
		t.RequestedSuit = &suit
	} else if card.Suit != *t.RequestedSuit && hasSuit(hand, *t.RequestedSuit) {
		return ErrMustFollowSuit
	}

	t.Plays = append(t.Plays, Play{Seat: seat, Card: card})
	return nil
}

// Winner determines who takes the trick: the highest trump played wins,
// or failing any trump, the highest card of the requested suit. It is an
// error to ask before the trick is decided.
func (t *Trick) Winner(trump *deck.Suit) (Seat, error) {
	if !t.Done() {
		return 0, fmt.Errorf("%w: trick %d is not decided yet", ErrWrongPhase, t.Number)
	}

	best := -1
	if trump != nil {
		for i, play := range t.Plays {
			if play.Card.Suit != *trump {
				continue
			}
			if best < 0 || play.Card.Worth() > t.Plays[best].Card.Worth() {
				best = i
			}
		}
	}
	if best < 0 {
		for i, play := range t.Plays {
			if play.Card.Suit != *t.RequestedSuit {
				continue
			}
			if best < 0 || play.Card.Worth() > t.Plays[best].Card.Worth() {
				best = i
			}
		}
	}
	return t.Plays[best].Seat, nil
}

// collect marks a decided trick as taken by its winner
func (t *Trick) collect(seat Seat, trump *deck.Suit) error {
	if t.Collected {
		return fmt.Errorf("%w: trick %d was already collected", ErrWrongPhase, t.Number)
	}
	winner, err := t.Winner(trump)
	if err != nil {
		return err
	}
	if winner != seat {
		return ErrWrongPlayer
	}
	t.Collected = true
	return nil
}

func hasSuit(hand []deck.Card, suit deck.Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

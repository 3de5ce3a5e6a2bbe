package game

import (
	"github.com/JoepDriesen/Rikker/deck"
)

// BidValue identifies a contract (or a pass) by its declared strength.
// The numeric order is the bidding order: every bid must be strictly
// stronger than the provisional highest bid.
type BidValue int

const (
	Pass BidValue = iota
	Rik
	RikFor9
	Miserie
	RikFor10
	RikFor11
	OpenMiserieWithCard
	OpenForAllWithCard
	RikFor12
	RikFor13
	OpenMiserie
	OpenForAll
)

var bidNames = []string{
	"Pass",
	"Rik",
	"Rik for 9",
	"Miserie",
	"Rik for 10",
	"Rik for 11",
	"Open miserie with card",
	"Open for all with card",
	"Rik for 12",
	"Rik for 13",
	"Open miserie",
	"Open for all",
}

func (v BidValue) String() string {
	if v < Pass || int(v) >= len(bidNames) {
		return "?"
	}
	return bidNames[v]
}

// tricksRequired holds the trick threshold per Rik-family contract
var tricksRequired = map[BidValue]int{
	Rik:      8,
	RikFor9:  9,
	RikFor10: 10,
	RikFor11: 11,
	RikFor12: 12,
	RikFor13: 13,
}

// soloPoints holds the fixed stake per solo contract
var soloPoints = map[BidValue]int{
	Miserie:             9,
	OpenMiserieWithCard: 12,
	OpenForAllWithCard:  15,
	OpenMiserie:         18,
	OpenForAll:          21,
}

// BidValues returns every placeable contract in ascending strength order,
// excluding Pass.
func BidValues() []BidValue {
	return []BidValue{
		Rik, RikFor9, Miserie, RikFor10, RikFor11, OpenMiserieWithCard,
		OpenForAllWithCard, RikFor12, RikFor13, OpenMiserie, OpenForAll,
	}
}

// IsRik reports whether the contract belongs to the partnership Rik family
func (v BidValue) IsRik() bool {
	_, ok := tricksRequired[v]
	return ok
}

// IsMiserie reports whether the contract belongs to the Miserie family,
// in which the asking player must win no tricks at all.
func (v BidValue) IsMiserie() bool {
	return v == Miserie || v == OpenMiserieWithCard || v == OpenMiserie
}

// IsVoorAlles reports whether the contract belongs to the "for everything"
// family, in which the asking player must win every trick.
func (v BidValue) IsVoorAlles() bool {
	return v == OpenForAllWithCard || v == OpenForAll
}

// TrumpNeeded reports whether the contract is played with a trump suit.
// Only the Miserie family is played without one.
func (v BidValue) TrumpNeeded() bool {
	return v != Pass && !v.IsMiserie()
}

// MateNeeded reports whether the contract is played in partnership
func (v BidValue) MateNeeded() bool {
	return v.IsRik()
}

// TricksNeededToWin returns the number of tricks the asking team must
// take. The second return is false for the Miserie family, which has no
// threshold.
func (v BidValue) TricksNeededToWin() (int, bool) {
	if needed, ok := tricksRequired[v]; ok {
		return needed, true
	}
	if v.IsVoorAlles() {
		return numTricks, true
	}
	return 0, false
}

// PointsToEarn returns the fixed stake of a solo contract. The second
// return is false for the Rik family, whose points depend on the tricks
// actually taken.
func (v BidValue) PointsToEarn() (int, bool) {
	points, ok := soloPoints[v]
	return points, ok
}

// Bid records a single bid placed during a round
type Bid struct {
	Seat  Seat
	Value BidValue

	// Contract details, filled in by finalization for the winning bid
	TrumpSuit      *deck.Suit
	MateSuit       *deck.Suit
	MateCardNumber int
}

// Complete reports whether every contract detail this bid's value
// requires has been filled in
func (b *Bid) Complete() bool {
	if b.Value.TrumpNeeded() && b.TrumpSuit == nil {
		return false
	}
	if b.Value.MateNeeded() && (b.MateSuit == nil || b.MateCardNumber == 0) {
		return false
	}
	return true
}

// MateCard returns the card whose holder becomes the bidder's mate
func (b *Bid) MateCard() (deck.Card, bool) {
	if b.MateSuit == nil || b.MateCardNumber == 0 {
		return deck.Card{}, false
	}
	return deck.Card{Suit: *b.MateSuit, Number: b.MateCardNumber}, true
}

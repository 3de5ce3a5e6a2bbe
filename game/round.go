package game

import (
	"fmt"

	"github.com/JoepDriesen/Rikker/deck"
)

// numTricks is the number of tricks played out in a full round
const numTricks = 13

// Phase represents the stage a round is in. It is derived from the
// round's state and only ever moves forward.
type Phase int

const (
	Bidding Phase = iota
	FinalizingContract
	PlayingTricks
	RoundComplete
)

var roundPhaseNames = []string{
	"Bidding",
	"FinalizingContract",
	"PlayingTricks",
	"RoundComplete",
}

func (p Phase) String() string {
	if p < Bidding || int(p) >= len(roundPhaseNames) {
		return "?"
	}
	return roundPhaseNames[p]
}

// Round represents a single deal of thirteen tricks, bid and played out.
// It owns its bids and tricks exclusively; both live and die with it.
type Round struct {
	Dealer     Seat
	Bids       []*Bid
	HighestBid *Bid
	Mate       *Seat
	Tricks     []*Trick

	// Every player's running score at the start of the round
	StartScores [NumSeats]int
}

// Phase returns the stage this round is in
func (r *Round) Phase() Phase {
	if r.HighestBid == nil {
		return Bidding
	}
	if !r.HighestBid.Complete() {
		return FinalizingContract
	}
	if !r.Finished() {
		return PlayingTricks
	}
	return RoundComplete
}

// PlayersInOrder returns the seats in the order they bid and play: the
// seat after the dealer first, the dealer last.
func (r *Round) PlayersInOrder() []Seat {
	order := make([]Seat, 0, NumSeats)
	seat := r.Dealer.Next()
	for i := 0; i < NumSeats; i++ {
		order = append(order, seat)
		seat = seat.Next()
	}
	return order
}

func (r *Round) hasPassed(seat Seat) bool {
	for _, bid := range r.Bids {
		if bid.Seat == seat && bid.Value == Pass {
			return true
		}
	}
	return false
}

func (r *Round) countBidsBy(seat Seat) int {
	count := 0
	for _, bid := range r.Bids {
		if bid.Seat == seat {
			count++
		}
	}
	return count
}

func (r *Round) countPasses() int {
	count := 0
	for _, bid := range r.Bids {
		if bid.Value == Pass {
			count++
		}
	}
	return count
}

func (r *Round) anyNonPass() bool {
	for _, bid := range r.Bids {
		if bid.Value != Pass {
			return true
		}
	}
	return false
}

// NextBidder returns the seat whose turn it is to bid. The second return
// is false once bidding has legally concluded: three passes have been
// recorded alongside at least one real bid, or nobody is left who may act.
func (r *Round) NextBidder() (Seat, bool) {
	if r.countPasses() >= NumSeats-1 && len(r.Bids) > NumSeats-1 {
		return 0, false
	}
	if r.countPasses() >= NumSeats {
		return 0, false
	}

	order := r.PlayersInOrder()
	for biddingRound := 1; ; biddingRound++ {
		for _, seat := range order {
			if r.hasPassed(seat) {
				// A player who passed may never bid again this round
				continue
			}
			if r.countBidsBy(seat) < biddingRound {
				return seat, true
			}
		}
	}
}

// ProvisionalHighest returns the most recent non-Pass bid, or nil if none
// has been placed yet. Bids must strictly increase, so this is also the
// strongest bid on the table.
func (r *Round) ProvisionalHighest() *Bid {
	for i := len(r.Bids) - 1; i >= 0; i-- {
		if r.Bids[i].Value != Pass {
			return r.Bids[i]
		}
	}
	return nil
}

// PlaceBid records a bid for the given seat. When the bid concludes the
// bidding, the round's highest bid is fixed and the phase advances.
func (r *Round) PlaceBid(seat Seat, value BidValue) error {
	if r.Phase() != Bidding {
		return fmt.Errorf("%w: cannot bid during %s", ErrWrongPhase, r.Phase())
	}
	if r.hasPassed(seat) {
		return ErrAlreadyPassed
	}
	next, more := r.NextBidder()
	if !more || next != seat {
		return ErrOutOfTurn
	}

	if value == Pass {
		// The last player left to bid cannot pass once everyone else has
		if !r.anyNonPass() && r.countPasses() >= NumSeats-1 {
			return ErrMustBid
		}
	} else if highest := r.ProvisionalHighest(); highest != nil && value <= highest.Value {
		return ErrBidTooLow
	}

	r.Bids = append(r.Bids, &Bid{Seat: seat, Value: value})

	if _, more := r.NextBidder(); !more {
		r.HighestBid = r.ProvisionalHighest()
	}
	return nil
}

// mateDescent is the candidate order for the mate card. The Ace is
// assumed first; only a bidder holding (nearly) the whole rank descends.
var mateDescent = []int{1, 13, 12, 11}

// resolveMateCard finds the number of the mate card for the given hand
// and mate suit. With requireCover set, holding the current candidate of
// the mate suit is only acceptable when at least three cards of that
// number outside the trump suit are held too; otherwise the choice is
// rejected with ErrMustPickAnotherSuit. Descending past the Jack fails
// with ErrNoLegalMate.
func resolveMateCard(hand []deck.Card, trump, mateSuit deck.Suit, requireCover bool) (int, error) {
	for _, candidate := range mateDescent {
		if !handContains(hand, deck.Card{Suit: mateSuit, Number: candidate}) {
			return candidate, nil
		}
		if requireCover {
			// The bidder holds the guaranteed-highest outstanding card of
			// the mate suit, which defeats the purpose of a mate reveal
			// unless they hold the rank almost entirely.
			count := 0
			for _, c := range hand {
				if c.Number == candidate && c.Suit != trump {
					count++
				}
			}
			if count < 3 {
				return 0, ErrMustPickAnotherSuit
			}
		}
	}
	return 0, ErrNoLegalMate
}

func handContains(hand []deck.Card, card deck.Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// finalize resolves the winning bid's contract details against the
// bidder's hand. It returns the mate card if the contract needs one.
func (r *Round) finalize(seat Seat, trump, mate *deck.Suit, bidderHand []deck.Card) (*deck.Card, error) {
	if r.Phase() != FinalizingContract {
		return nil, fmt.Errorf("%w: cannot finalize during %s", ErrWrongPhase, r.Phase())
	}
	bid := r.HighestBid
	if seat != bid.Seat {
		return nil, ErrWrongPlayer
	}

	if bid.Value.TrumpNeeded() && trump == nil {
		return nil, ErrMissingTrumpSuit
	}

	var mateCard *deck.Card
	if bid.Value.MateNeeded() {
		if mate == nil {
			return nil, ErrMissingMateSuit
		}
		if *trump == *mate {
			return nil, ErrTrumpEqualsMate
		}

		number, err := resolveMateCard(bidderHand, *trump, *mate, true)
		if err == ErrMustPickAnotherSuit {
			// The choice stands only if no other suit could serve instead
			if alternativeMateSuitExists(bidderHand, *trump, *mate) {
				return nil, err
			}
			number, err = resolveMateCard(bidderHand, *trump, *mate, false)
		}
		if err != nil {
			return nil, err
		}

		bid.MateSuit = mate
		bid.MateCardNumber = number
		mateCard = &deck.Card{Suit: *mate, Number: number}
	}

	if bid.Value.TrumpNeeded() {
		bid.TrumpSuit = trump
	}
	return mateCard, nil
}

// alternativeMateSuitExists reports whether any suit other than the trump
// suit and the rejected mate suit would resolve to a legal mate card
func alternativeMateSuitExists(hand []deck.Card, trump, rejected deck.Suit) bool {
	for _, suit := range deck.Suits() {
		if suit == trump || suit == rejected {
			continue
		}
		if _, err := resolveMateCard(hand, trump, suit, true); err == nil {
			return true
		}
	}
	return false
}

func (r *Round) trumpSuit() *deck.Suit {
	if r.HighestBid == nil {
		return nil
	}
	return r.HighestBid.TrumpSuit
}

// TricksPlayed counts the tricks that have been played out and collected
func (r *Round) TricksPlayed() int {
	count := 0
	for _, trick := range r.Tricks {
		if trick.Collected {
			count++
		}
	}
	return count
}

// AllTricksPlayed reports whether all thirteen tricks have been collected
func (r *Round) AllTricksPlayed() bool {
	return r.TricksPlayed() >= numTricks
}

// AskingTeamTricks counts the collected tricks won by the bidder or mate
func (r *Round) AskingTeamTricks() int {
	if r.HighestBid == nil {
		return 0
	}
	won := 0
	for _, trick := range r.Tricks {
		if !trick.Collected {
			continue
		}
		winner, err := trick.Winner(r.trumpSuit())
		if err != nil {
			continue
		}
		if winner == r.HighestBid.Seat || (r.Mate != nil && winner == *r.Mate) {
			won++
		}
	}
	return won
}

// AskingTeamWon reports whether the asking team has won the round. The
// second return is false while the outcome is still undecided: Rik
// contracts need all thirteen tricks, Miserie resolves early as a loss on
// the first trick taken, and Vooralles resolves early as a loss on the
// first trick conceded.
func (r *Round) AskingTeamWon() (won, decided bool) {
	if r.HighestBid == nil || !r.HighestBid.Complete() {
		return false, false
	}

	value := r.HighestBid.Value
	switch {
	case value.IsRik():
		if !r.AllTricksPlayed() {
			return false, false
		}
		needed, _ := value.TricksNeededToWin()
		return r.AskingTeamTricks() >= needed, true

	case value.IsMiserie():
		if r.AskingTeamTricks() > 0 {
			return false, true
		}
		if r.AllTricksPlayed() {
			return true, true
		}
		return false, false

	default: // Vooralles
		if r.AskingTeamTricks() < r.TricksPlayed() {
			return false, true
		}
		if r.AllTricksPlayed() {
			return true, true
		}
		return false, false
	}
}

// Finished reports whether the round's win condition is decidable
func (r *Round) Finished() bool {
	_, decided := r.AskingTeamWon()
	return decided
}

// AskingTeamPoints returns the signed points for the asking team at the
// end of the round. Rik contracts score one point above the threshold
// margin on a win and one below it on a loss, so the result is never zero.
func (r *Round) AskingTeamPoints() (int, error) {
	won, decided := r.AskingTeamWon()
	if !decided {
		return 0, fmt.Errorf("%w: round is not finished", ErrWrongPhase)
	}

	if r.HighestBid.Value.IsRik() {
		tricksWon := r.AskingTeamTricks()
		tricksNeeded, _ := r.HighestBid.Value.TricksNeededToWin()
		if tricksWon >= tricksNeeded {
			return tricksWon - tricksNeeded + 1, nil
		}
		return tricksWon - tricksNeeded - 1, nil
	}

	points, _ := r.HighestBid.Value.PointsToEarn()
	if won {
		return points, nil
	}
	return -points, nil
}

// PointsFor returns the signed score delta for one seat. Partnership
// contracts debit each opponent the full asking-team total, so the round
// is deliberately not zero-sum. Solo contracts split the negated total in
// three, truncating; every solo stake is divisible by three.
func (r *Round) PointsFor(seat Seat) (int, error) {
	askingPoints, err := r.AskingTeamPoints()
	if err != nil {
		return 0, err
	}

	if seat == r.HighestBid.Seat || (r.Mate != nil && seat == *r.Mate) {
		return askingPoints, nil
	}
	if r.HighestBid.Value.IsRik() {
		return -askingPoints, nil
	}
	return -askingPoints / 3, nil
}

// CurrentTrick returns the trick currently being played, creating the
// next one if the previous trick has been collected. The winner of a
// collected trick leads the next; the first trick is led by the seat
// after the dealer.
func (r *Round) CurrentTrick() (*Trick, error) {
	if r.Phase() != PlayingTricks {
		return nil, fmt.Errorf("%w: no current trick during %s", ErrWrongPhase, r.Phase())
	}

	for _, trick := range r.Tricks {
		if !trick.Collected {
			return trick, nil
		}
	}

	leader := r.Dealer.Next()
	if n := len(r.Tricks); n > 0 {
		winner, err := r.Tricks[n-1].Winner(r.trumpSuit())
		if err != nil {
			return nil, err
		}
		leader = winner
	}

	trick := &Trick{Number: len(r.Tricks), Leader: leader}
	r.Tricks = append(r.Tricks, trick)
	return trick, nil
}

// PreviousTrick returns the most recently collected trick, or nil
func (r *Round) PreviousTrick() *Trick {
	for i := len(r.Tricks) - 1; i >= 0; i-- {
		if r.Tricks[i].Collected {
			return r.Tricks[i]
		}
	}
	return nil
}

// TricksWonBy counts the collected tricks won by one seat
func (r *Round) TricksWonBy(seat Seat) int {
	count := 0
	for _, trick := range r.Tricks {
		if !trick.Collected {
			continue
		}
		if winner, err := trick.Winner(r.trumpSuit()); err == nil && winner == seat {
			count++
		}
	}
	return count
}

// LastBidBy returns the most recent bid placed by one seat, or nil
func (r *Round) LastBidBy(seat Seat) *Bid {
	for i := len(r.Bids) - 1; i >= 0; i-- {
		if r.Bids[i].Seat == seat {
			return r.Bids[i]
		}
	}
	return nil
}

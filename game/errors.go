package game

import "errors"

// Turn violations: the caller should retry as (or with) the correct actor.
var (
	ErrOutOfTurn     = errors.New("it is another player's turn")
	ErrAlreadyPassed = errors.New("player has already passed this round")
	ErrWrongPlayer   = errors.New("another player must take this action")
)

// Legality violations: the acting player must choose a different move.
var (
	ErrBidTooLow = errors.New("bid must be higher than the current highest bid")
	ErrMustBid   = errors.New("every other player has passed, so a bid must be placed")

	ErrMustFollowSuit = errors.New("must follow the requested suit when holding it")
	ErrCardNotOwned   = errors.New("card is not in the player's hand")

	ErrMissingTrumpSuit    = errors.New("this contract requires a trump suit")
	ErrMissingMateSuit     = errors.New("this contract requires a mate suit")
	ErrTrumpEqualsMate     = errors.New("the trump suit cannot double as the mate suit")
	ErrMustPickAnotherSuit = errors.New("bidder holds the highest card of the chosen mate suit while other suits remain")
	ErrNoLegalMate         = errors.New("no legal mate card exists in the chosen suit")
)

// ErrWrongPhase marks a precondition violation: an operation invoked in a
// phase that does not allow it. Unlike the legality errors above, hitting
// it indicates a bug in the caller rather than an illegal move, so callers
// should log it separately. It is still recoverable.
var ErrWrongPhase = errors.New("operation not allowed in the current phase")

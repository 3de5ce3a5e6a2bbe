package deck

import (
	"fmt"
	"math/rand"
)

// Size is the number of cards in a full deck
const Size = 52

// Deck represents an ordered deck of cards. The card at index 0 sits at
// the bottom; cards are dealt from the top.
type Deck []Card

// New builds the full 52-card deck in a fixed order. It fails if fewer
// than 52 distinct (suit, number) pairs can be produced.
func New() (Deck, error) {
	seen := map[Card]struct{}{}
	cards := make(Deck, 0, Size)
	for _, suit := range Suits() {
		for number := MinNumber; number <= MaxNumber; number++ {
			c := Card{Suit: suit, Number: number}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cards = append(cards, c)
		}
	}
	if len(cards) != Size {
		return nil, fmt.Errorf("deck has %d distinct cards, expected %d", len(cards), Size)
	}
	return cards, nil
}

// Shuffle reorders the deck using the given source. This is the only
// randomised operation in the whole engine.
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal removes n cards from the top of the deck and returns them
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := (*d)[startingIndex:numCardsInDeck]
	*d = (*d)[:startingIndex]
	return subSlice
}

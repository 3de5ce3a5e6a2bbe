package deck

import (
	"errors"
	"fmt"
	"strconv"
)

// Suit represents a suit in a deck of cards
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var (
	suitNames   = []string{"Clubs", "Diamonds", "Hearts", "Spades"}
	suitLetters = []string{"C", "D", "H", "S"}
)

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return suitNames[s]
}

// Letter returns the single-letter code used in card identifiers
func (s Suit) Letter() string {
	return suitLetters[s]
}

// Suits returns every suit in identifier order
func Suits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// Card numbers run from the Ace (1) up to the King (13)
const (
	MinNumber = 1
	MaxNumber = 13
)

// Card represents a playing card. Its identity is the (suit, number) pair.
type Card struct {
	Suit   Suit
	Number int
}

// NewCard constructs a card
func NewCard(suit Suit, number int) (Card, error) {
	if suit < Clubs || suit > Spades || number < MinNumber || number > MaxNumber {
		return Card{}, errors.New("arguments out of range")
	}
	return Card{Suit: suit, Number: number}, nil
}

// Worth returns a card's strength for trick comparison. The Ace outranks
// every other number, so it is worth 13 while the King is worth 12.
func (c Card) Worth() int {
	if c.Number == 1 {
		return 13
	}
	return c.Number - 1
}

// Identifier returns the compact token for this card, a suit letter
// followed by the number, e.g. "H1" for the Ace of Hearts.
func (c Card) Identifier() string {
	return fmt.Sprintf("%s%d", c.Suit.Letter(), c.Number)
}

func (c Card) String() string {
	return fmt.Sprintf("%d of %s", c.Number, c.Suit)
}

// ErrBadIdentifier is returned when a card token cannot be parsed
var ErrBadIdentifier = errors.New("not a valid card identifier")

// ParseIdentifier resolves a suit-letter + number token back into a card
func ParseIdentifier(token string) (Card, error) {
	if len(token) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadIdentifier, token)
	}

	suit := Suit(-1)
	for i, letter := range suitLetters {
		if token[:1] == letter {
			suit = Suit(i)
		}
	}
	if suit < Clubs {
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrBadIdentifier, token)
	}

	number, err := strconv.Atoi(token[1:])
	if err != nil || number < MinNumber || number > MaxNumber {
		return Card{}, fmt.Errorf("%w: bad number in %q", ErrBadIdentifier, token)
	}

	return Card{Suit: suit, Number: number}, nil
}

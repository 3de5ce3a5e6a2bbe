package game

import (
	"fmt"

	"github.com/JoepDriesen/Rikker/deck"
	"github.com/JoepDriesen/Rikker/protocol"
)

func suitPtr(s deck.Suit) *deck.Suit {
	return &s
}

func card(s deck.Suit, n int) deck.Card {
	return deck.Card{Suit: s, Number: n}
}

func testPlayers() [NumSeats]protocol.PlayerInfo {
	var players [NumSeats]protocol.PlayerInfo
	for i := range players {
		players[i] = protocol.PlayerInfo{
			PlayerID: fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Player %d", i+1),
		}
	}
	return players
}

// wonTrick fabricates a collected trick taken by the given seat. The
// winner plays the Ace of the requested suit; nobody plays trump.
func wonTrick(number int, winner Seat) *Trick {
	clubs := deck.Clubs
	trick := &Trick{
		Number:        number,
		Leader:        winner,
		RequestedSuit: &clubs,
		Collected:     true,
	}

	seat := winner
	for i := 0; i < NumSeats; i++ {
		n := 1 // the Ace for the winner
		if i > 0 {
			n = i + 1
		}
		trick.Plays = append(trick.Plays, Play{Seat: seat, Card: card(deck.Clubs, n)})
		seat = seat.Next()
	}
	return trick
}

// fabricateTricks builds a full set of collected tricks with the given
// winners, in order
func fabricateTricks(winners []Seat) []*Trick {
	tricks := make([]*Trick, len(winners))
	for i, winner := range winners {
		tricks[i] = wonTrick(i, winner)
	}
	return tricks
}

package rikker

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/JoepDriesen/Rikker/bots"
	"github.com/JoepDriesen/Rikker/game"
	utils "github.com/JoepDriesen/Rikker/internal"
	"github.com/JoepDriesen/Rikker/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyPlayer records every message the engine sends it
type spyPlayer struct {
	id   string
	name string

	mu   sync.Mutex
	msgs []protocol.OutboundMessage
}

func newSpyPlayer(id, name string) *spyPlayer {
	return &spyPlayer{id: id, name: name}
}

func (p *spyPlayer) ID() string   { return p.id }
func (p *spyPlayer) Name() string { return p.name }

func (p *spyPlayer) Send(msg protocol.OutboundMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *spyPlayer) received() []protocol.OutboundMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := make([]protocol.OutboundMessage, len(p.msgs))
	copy(msgs, p.msgs)
	return msgs
}

func enginePlayers() [game.NumSeats]protocol.PlayerInfo {
	var players [game.NumSeats]protocol.PlayerInfo
	for i := range players {
		players[i] = protocol.PlayerInfo{
			PlayerID: fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Player %d", i+1),
		}
	}
	return players
}

func botDeciders() map[game.Seat]Decider {
	deciders := map[game.Seat]Decider{}
	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		deciders[seat] = bots.New(seat)
	}
	return deciders
}

func TestGameEngineRunsARoundWithBots(t *testing.T) {
	engine, err := NewGameEngine(GameEngineOpts{
		GameID:    "bot-round",
		CreatorID: "p0",
		Players:   enginePlayers(),
		Deciders:  botDeciders(),
		Seed:      3,
	})
	require.NoError(t, err)

	observer := newSpyPlayer("p0", "Player 1")
	utils.AssertNoError(t, engine.AddPlayer(observer))

	utils.AssertNoError(t, engine.Start())

	utils.Within(t, 5*time.Second, func() {
		for engine.Game().State() != game.AfterRound {
			time.Sleep(10 * time.Millisecond)
		}
	})

	round := engine.Game().CurrentRound()
	utils.AssertTrue(t, round.Finished())
	utils.AssertEqual(t, round.HighestBid.Value, game.Rik)

	t.Run("the end of the round is broadcast", func(t *testing.T) {
		utils.Within(t, time.Second, func() {
			for {
				for _, msg := range observer.received() {
					if msg.Cmd == protocol.RoundFinished {
						utils.AssertEqual(t, len(msg.Scores), game.NumSeats)
						return
					}
				}
				time.Sleep(10 * time.Millisecond)
			}
		})
	})
}

func TestGameEngineRelaysDecisionsToPlayers(t *testing.T) {
	engine, err := NewGameEngine(GameEngineOpts{
		GameID:    "human-table",
		CreatorID: "p0",
		Players:   enginePlayers(),
		Seed:      3,
	})
	require.NoError(t, err)

	players := make([]*spyPlayer, game.NumSeats)
	for i := range players {
		players[i] = newSpyPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i+1))
		utils.AssertNoError(t, engine.AddPlayer(players[i]))
	}

	t.Run("a stranger cannot be attached", func(t *testing.T) {
		err := engine.AddPlayer(newSpyPlayer("stranger", "Stranger"))
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})

	utils.AssertNoError(t, engine.Start())

	// seat 0 deals the first round, so seat 1 opens the bidding
	utils.Within(t, 5*time.Second, func() {
		for {
			for _, msg := range players[1].received() {
				if msg.Cmd == protocol.DecisionNeeded {
					return
				}
			}
			time.Sleep(10 * time.Millisecond)
		}
	})

	var decision *protocol.OutboundMessage
	for _, msg := range players[1].received() {
		if msg.Cmd == protocol.DecisionNeeded {
			m := msg
			decision = &m
			break
		}
	}
	require.NotNil(t, decision)

	utils.AssertEqual(t, decision.PlayerID, "p1")
	utils.AssertEqual(t, len(decision.Hand), 13)
	utils.AssertEqual(t, decision.Note.Phase, protocol.Bidding)
	utils.AssertEqual(t, decision.Note.Seat, 1)
	utils.AssertDeepEqual(t, decision.Scores, []int{100, 100, 100, 100})

	t.Run("everyone hears the game start", func(t *testing.T) {
		for _, p := range players {
			p := p
			utils.Within(t, time.Second, func() {
				for {
					for _, msg := range p.received() {
						if msg.Cmd == protocol.HasStarted {
							return
						}
					}
					time.Sleep(10 * time.Millisecond)
				}
			})
		}
	})
}

func TestGameEngineReceive(t *testing.T) {
	engine, err := NewGameEngine(GameEngineOpts{
		GameID:    "receive-table",
		CreatorID: "p0",
		Players:   enginePlayers(),
		Seed:      3,
	})
	require.NoError(t, err)

	t.Run("an unknown player is rejected", func(t *testing.T) {
		err := engine.Receive(protocol.InboundMessage{PlayerID: "stranger", Command: "bid"})
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("an unknown command is rejected", func(t *testing.T) {
		err := engine.Receive(protocol.InboundMessage{PlayerID: "p0", Command: "dance"})
		utils.AssertErrored(t, err)
	})

	t.Run("the creator starts the game over the wire", func(t *testing.T) {
		err := engine.Receive(protocol.InboundMessage{PlayerID: "p0", Command: "start"})
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, engine.Game().State(), game.DuringRound)
	})

	t.Run("bids flow through to the game", func(t *testing.T) {
		err := engine.Receive(protocol.InboundMessage{
			PlayerID: "p1",
			Command:  "bid",
			Bid:      int(game.Pass),
		})
		utils.AssertNoError(t, err)

		err = engine.Receive(protocol.InboundMessage{
			PlayerID: "p1",
			Command:  "bid",
			Bid:      int(game.Rik),
		})
		assert.ErrorIs(t, err, game.ErrAlreadyPassed)
	})

	t.Run("a malformed card identifier is rejected", func(t *testing.T) {
		err := engine.Receive(protocol.InboundMessage{
			PlayerID: "p2",
			Command:  "play",
			Card:     "X99",
		})
		utils.AssertErrored(t, err)
	})
}

func TestParseSuit(t *testing.T) {
	t.Run("an empty letter means no suit", func(t *testing.T) {
		suit, err := parseSuit("")
		utils.AssertNoError(t, err)
		utils.AssertTrue(t, suit == nil)
	})

	t.Run("suit letters resolve", func(t *testing.T) {
		for _, letter := range []string{"C", "D", "H", "S"} {
			suit, err := parseSuit(letter)
			utils.AssertNoError(t, err)
			require.NotNil(t, suit)
			utils.AssertEqual(t, suit.Letter(), letter)
		}
	})

	t.Run("an unknown letter is rejected", func(t *testing.T) {
		_, err := parseSuit("X")
		utils.AssertErrored(t, err)
	})
}

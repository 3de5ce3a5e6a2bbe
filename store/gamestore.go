package store

import (
	"errors"
	"fmt"
	"sync"

	rikker "github.com/JoepDriesen/Rikker"
	"github.com/JoepDriesen/Rikker/game"
	"github.com/JoepDriesen/Rikker/protocol"
)

var (
	ErrUnknownGameID      = errors.New("unknown game ID")
	ErrGameAlreadyExists  = errors.New("a game with this ID already exists")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrTableFull          = errors.New("game already has four players")
)

// GameStore holds the games the service knows about. The engine itself
// is agnostic to how games are stored; this is the in-memory stand-in
// for a durable implementation.
type GameStore interface {
	FindGame(gameID string) *rikker.GameEngine
	FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo
	PendingPlayers(gameID string) []protocol.PlayerInfo
	AddPendingGame(gameID, creatorID, creatorName string) error
	AddPendingPlayer(gameID, playerID, name string) error
	ActivateGame(gameID string, engine *rikker.GameEngine) error
}

// InMemoryGameStore maps game IDs to game engines. A game starts out
// pending, as a list of joined players; once activated it is backed by a
// running engine.
type InMemoryGameStore struct {
	mu             sync.RWMutex
	games          map[string]*rikker.GameEngine
	pendingPlayers map[string][]protocol.PlayerInfo
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games:          map[string]*rikker.GameEngine{},
		pendingPlayers: map[string][]protocol.PlayerInfo{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) *rikker.GameEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.games[gameID]
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, info := range s.pendingPlayers[gameID] {
		if info.PlayerID == playerID {
			return &s.pendingPlayers[gameID][i]
		}
	}
	return nil
}

// PendingPlayers returns the players who joined a pending game so far
func (s *InMemoryGameStore) PendingPlayers(gameID string) []protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]protocol.PlayerInfo, len(s.pendingPlayers[gameID]))
	copy(players, s.pendingPlayers[gameID])
	return players
}

// AddPendingGame registers a new game with its creator as the first
// pending player
func (s *InMemoryGameStore) AddPendingGame(gameID, creatorID, creatorName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameAlreadyExists, gameID)
	}
	if _, exists := s.pendingPlayers[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameAlreadyExists, gameID)
	}

	s.pendingPlayers[gameID] = []protocol.PlayerInfo{{PlayerID: creatorID, Name: creatorName}}
	return nil
}

// AddPendingPlayer records the information from which a Player will be
// constructed once their connection arrives
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, started := s.games[gameID]; started {
		return ErrGameAlreadyStarted
	}
	pending, exists := s.pendingPlayers[gameID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}
	if len(pending) >= game.NumSeats {
		return ErrTableFull
	}

	s.pendingPlayers[gameID] = append(pending, protocol.PlayerInfo{
		PlayerID: playerID,
		Name:     name,
	})
	return nil
}

// ActivateGame promotes a pending game to a running engine
func (s *InMemoryGameStore) ActivateGame(gameID string, engine *rikker.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, started := s.games[gameID]; started {
		return ErrGameAlreadyStarted
	}
	if _, exists := s.pendingPlayers[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownGameID, gameID)
	}

	s.games[gameID] = engine
	delete(s.pendingPlayers, gameID)
	return nil
}

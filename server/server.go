package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"

	rikker "github.com/JoepDriesen/Rikker"
	"github.com/JoepDriesen/Rikker/bots"
	"github.com/JoepDriesen/Rikker/game"
	"github.com/JoepDriesen/Rikker/protocol"
	"github.com/JoepDriesen/Rikker/store"
)

type NewGameReq struct {
	Name string `json:"name"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type StartGameReq struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type GetGameRes struct {
	Status string `json:"status"`
	GameID string `json:"game_id"`
}

// GameServer is a game server
type GameServer struct {
	store store.GameStore
	http.Server
}

// NewGameID constructs a six-letter game code
func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)

	rand.Seed(time.Now().UnixNano())
	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}

	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

// NewServer creates a new GameServer
func NewServer(gameStore store.GameStore) *GameServer {
	s := new(GameServer)
	s.store = gameStore

	router := http.NewServeMux()
	router.Handle("/new", http.HandlerFunc(s.HandleNewGame))
	router.Handle("/join", http.HandlerFunc(s.HandleJoinGame))
	router.Handle("/start", http.HandlerFunc(s.HandleStartGame))
	router.Handle("/game/", http.HandlerFunc(s.HandleFindGame))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	s.Handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.LoggingHandler(os.Stdout, router))

	return s
}

// HandleNewGame creates a pending game with the requester as its creator
func (s *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req NewGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "a player name is required", http.StatusBadRequest)
		return
	}

	gameID, playerID := NewGameID(), rikker.NewID()
	if err := s.store.AddPendingGame(gameID, playerID, req.Name); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writePendingGame(w, gameID, playerID, req.Name, true)
}

// HandleJoinGame adds a pending player to a pending game
func (s *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req JoinGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" || req.Name == "" {
		http.Error(w, "a game ID and player name are required", http.StatusBadRequest)
		return
	}

	playerID := rikker.NewID()
	err := s.store.AddPendingPlayer(req.GameID, playerID, req.Name)
	switch {
	case err == nil:
	case strings.Contains(err.Error(), store.ErrUnknownGameID.Error()):
		http.Error(w, unknownGameIDMsg(req.GameID), http.StatusNotFound)
		return
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writePendingGame(w, req.GameID, playerID, req.Name, false)
}

// HandleStartGame activates a pending game. Seats without a human player
// are filled with bots; only the creator may start the game.
func (s *GameServer) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req StartGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		http.Error(w, "a game ID is required", http.StatusBadRequest)
		return
	}

	pending := s.store.PendingPlayers(req.GameID)
	if len(pending) == 0 {
		http.Error(w, unknownGameIDMsg(req.GameID), http.StatusNotFound)
		return
	}
	if pending[0].PlayerID != req.PlayerID {
		http.Error(w, "only the creator may start the game", http.StatusForbidden)
		return
	}

	engine, err := NewEngineForTable(req.GameID, pending)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.store.ActivateGame(req.GameID, engine); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(GetGameRes{Status: "active", GameID: req.GameID})
}

// HandleFindGame reports whether a game is pending or active
func (s *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimPrefix(r.URL.Path, "/game/")

	if s.store.FindGame(gameID) != nil {
		json.NewEncoder(w).Encode(GetGameRes{Status: "active", GameID: gameID})
		return
	}
	if len(s.store.PendingPlayers(gameID)) > 0 {
		json.NewEncoder(w).Encode(GetGameRes{Status: "pending", GameID: gameID})
		return
	}

	http.Error(w, unknownGameIDMsg(gameID), http.StatusNotFound)
}

func (s *GameServer) writePendingGame(w http.ResponseWriter, gameID, playerID, name string, admin bool) {
	names := []string{}
	for _, info := range s.store.PendingPlayers(gameID) {
		names = append(names, info.Name)
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(PendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     name,
		Admin:    admin,
		Players:  names,
	}); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// NewEngineForTable builds a running engine for the joined players,
// filling the remaining seats with bots
func NewEngineForTable(gameID string, joined []protocol.PlayerInfo) (*rikker.GameEngine, error) {
	var players [game.NumSeats]protocol.PlayerInfo
	deciders := map[game.Seat]rikker.Decider{}

	for seat := 0; seat < game.NumSeats; seat++ {
		if seat < len(joined) {
			players[seat] = joined[seat]
			continue
		}
		players[seat] = protocol.PlayerInfo{
			PlayerID: fmt.Sprintf("bot-%d", seat),
			Name:     fmt.Sprintf("Bot #%d", seat-len(joined)+1),
		}
		deciders[game.Seat(seat)] = bots.New(game.Seat(seat))
	}

	creatorID := ""
	if len(joined) > 0 {
		creatorID = joined[0].PlayerID
	}

	return rikker.NewGameEngine(rikker.GameEngineOpts{
		GameID:    gameID,
		CreatorID: creatorID,
		Players:   players,
		Deciders:  deciders,
	})
}

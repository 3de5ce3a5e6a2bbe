package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	utils "github.com/JoepDriesen/Rikker/internal"
	"github.com/JoepDriesen/Rikker/protocol"
	"github.com/JoepDriesen/Rikker/store"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleNewGame(t *testing.T) {
	s := NewServer(store.NewInMemoryGameStore())

	t.Run("creates a pending game", func(t *testing.T) {
		rec := postJSON(t, s.HandleNewGame, "/new", NewGameReq{Name: "Joep"})
		utils.AssertEqual(t, rec.Code, http.StatusCreated)

		var res PendingGameRes
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))

		utils.AssertEqual(t, len(res.GameID), 6)
		utils.AssertTrue(t, res.PlayerID != "")
		utils.AssertTrue(t, res.Admin)
		utils.AssertDeepEqual(t, res.Players, []string{"Joep"})
	})

	t.Run("requires a name", func(t *testing.T) {
		rec := postJSON(t, s.HandleNewGame, "/new", NewGameReq{})
		utils.AssertEqual(t, rec.Code, http.StatusBadRequest)
	})

	t.Run("rejects GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.HandleNewGame(rec, httptest.NewRequest(http.MethodGet, "/new", nil))
		utils.AssertEqual(t, rec.Code, http.StatusMethodNotAllowed)
	})
}

func TestHandleJoinGame(t *testing.T) {
	s := NewServer(store.NewInMemoryGameStore())

	rec := postJSON(t, s.HandleNewGame, "/new", NewGameReq{Name: "Joep"})
	var created PendingGameRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	t.Run("a second player joins", func(t *testing.T) {
		rec := postJSON(t, s.HandleJoinGame, "/join", JoinGameReq{GameID: created.GameID, Name: "Marie"})
		utils.AssertEqual(t, rec.Code, http.StatusCreated)

		var res PendingGameRes
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		utils.AssertTrue(t, !res.Admin)
		utils.AssertDeepEqual(t, res.Players, []string{"Joep", "Marie"})
	})

	t.Run("an unknown game ID is a 404", func(t *testing.T) {
		rec := postJSON(t, s.HandleJoinGame, "/join", JoinGameReq{GameID: "NOPE", Name: "Ghost"})
		utils.AssertEqual(t, rec.Code, http.StatusNotFound)
	})

	t.Run("a full table is a 400", func(t *testing.T) {
		postJSON(t, s.HandleJoinGame, "/join", JoinGameReq{GameID: created.GameID, Name: "Luc"})
		postJSON(t, s.HandleJoinGame, "/join", JoinGameReq{GameID: created.GameID, Name: "Anna"})

		rec := postJSON(t, s.HandleJoinGame, "/join", JoinGameReq{GameID: created.GameID, Name: "Overflow"})
		utils.AssertEqual(t, rec.Code, http.StatusBadRequest)
	})
}

func TestHandleStartGame(t *testing.T) {
	s := NewServer(store.NewInMemoryGameStore())

	rec := postJSON(t, s.HandleNewGame, "/new", NewGameReq{Name: "Joep"})
	var created PendingGameRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	t.Run("only the creator may start", func(t *testing.T) {
		rec := postJSON(t, s.HandleStartGame, "/start", StartGameReq{GameID: created.GameID, PlayerID: "not-the-creator"})
		utils.AssertEqual(t, rec.Code, http.StatusForbidden)
	})

	t.Run("an unknown game is a 404", func(t *testing.T) {
		rec := postJSON(t, s.HandleStartGame, "/start", StartGameReq{GameID: "NOPE", PlayerID: created.PlayerID})
		utils.AssertEqual(t, rec.Code, http.StatusNotFound)
	})

	t.Run("the creator starts and the game activates", func(t *testing.T) {
		rec := postJSON(t, s.HandleStartGame, "/start", StartGameReq{GameID: created.GameID, PlayerID: created.PlayerID})
		utils.AssertEqual(t, rec.Code, http.StatusOK)

		var res GetGameRes
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		utils.AssertEqual(t, res.Status, "active")

		engine := s.store.(*store.InMemoryGameStore).FindGame(created.GameID)
		require.NotNil(t, engine)
		utils.AssertEqual(t, engine.CreatorID(), created.PlayerID)
	})

	t.Run("starting twice is rejected", func(t *testing.T) {
		rec := postJSON(t, s.HandleStartGame, "/start", StartGameReq{GameID: created.GameID, PlayerID: created.PlayerID})
		utils.AssertEqual(t, rec.Code, http.StatusNotFound)
	})
}

func TestHandleFindGame(t *testing.T) {
	s := NewServer(store.NewInMemoryGameStore())

	rec := postJSON(t, s.HandleNewGame, "/new", NewGameReq{Name: "Joep"})
	var created PendingGameRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	getGame := func(gameID string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		s.HandleFindGame(rec, httptest.NewRequest(http.MethodGet, "/game/"+gameID, nil))
		return rec
	}

	t.Run("a pending game reports pending", func(t *testing.T) {
		rec := getGame(created.GameID)
		utils.AssertEqual(t, rec.Code, http.StatusOK)

		var res GetGameRes
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		utils.AssertEqual(t, res.Status, "pending")
		utils.AssertEqual(t, res.GameID, created.GameID)
	})

	t.Run("a started game reports active", func(t *testing.T) {
		rec := postJSON(t, s.HandleStartGame, "/start", StartGameReq{GameID: created.GameID, PlayerID: created.PlayerID})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = getGame(created.GameID)
		var res GetGameRes
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		utils.AssertEqual(t, res.Status, "active")
	})

	t.Run("an unknown game is a 404", func(t *testing.T) {
		rec := getGame("NOPE")
		utils.AssertEqual(t, rec.Code, http.StatusNotFound)
	})
}

func TestNewEngineForTable(t *testing.T) {
	joined := []protocol.PlayerInfo{
		{PlayerID: "creator-id", Name: "Joep"},
		{PlayerID: "p2", Name: "Marie"},
	}

	engine, err := NewEngineForTable("TABLE1", joined)
	require.NoError(t, err)

	utils.AssertEqual(t, engine.ID(), "TABLE1")
	utils.AssertEqual(t, engine.CreatorID(), "creator-id")

	t.Run("humans keep their seats and bots fill the rest", func(t *testing.T) {
		g := engine.Game()

		utils.AssertEqual(t, g.Player(0).PlayerID, "creator-id")
		utils.AssertEqual(t, g.Player(1).PlayerID, "p2")
		utils.AssertEqual(t, g.Player(2).PlayerID, "bot-2")
		utils.AssertEqual(t, g.Player(3).PlayerID, "bot-3")
		utils.AssertEqual(t, g.Player(2).Name, "Bot #1")
		utils.AssertEqual(t, g.Player(3).Name, "Bot #2")
	})
}

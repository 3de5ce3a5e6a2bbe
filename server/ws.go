package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/JoepDriesen/Rikker/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSPlayer relays engine messages to a player over a websocket and feeds
// their commands back into the engine
type WSPlayer struct {
	id     string
	name   string
	conn   *websocket.Conn
	sendCh chan protocol.OutboundMessage
}

// NewWSPlayer constructs a WSPlayer and starts its write pump
func NewWSPlayer(id, name string, conn *websocket.Conn) *WSPlayer {
	p := &WSPlayer{
		id:     id,
		name:   name,
		conn:   conn,
		sendCh: make(chan protocol.OutboundMessage, 16),
	}
	go p.writePump()
	return p
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

// Send queues a message for delivery
func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	p.sendCh <- msg
	return nil
}

func (p *WSPlayer) writePump() {
	for msg := range p.sendCh {
		if err := p.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write to %s: %v", p.id, err)
			return
		}
	}
}

// HandleWS upgrades a player connection and attaches it to their game
func (s *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	playerID := r.URL.Query().Get("player_id")

	engine := s.store.FindGame(gameID)
	if engine == nil {
		http.Error(w, unknownGameIDMsg(gameID), http.StatusNotFound)
		return
	}

	seat, ok := engine.Game().SeatOf(playerID)
	if !ok {
		http.Error(w, "unknown player ID", http.StatusNotFound)
		return
	}
	info := engine.Game().Player(seat)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}

	player := NewWSPlayer(info.PlayerID, info.Name, conn)
	if err := engine.AddPlayer(player); err != nil {
		log.Printf("ws attach: %v", err)
		conn.Close()
		return
	}

	// Read pump: every inbound frame is an engine command. Rejections go
	// back to the player; the engine state is untouched by them.
	go func() {
		defer conn.Close()
		for {
			var msg protocol.InboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			msg.PlayerID = playerID
			if err := engine.Receive(msg); err != nil {
				player.Send(protocol.OutboundMessage{
					Cmd:      protocol.Rejected,
					PlayerID: playerID,
					Error:    err.Error(),
				})
			}
		}
	}()
}

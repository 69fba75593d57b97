// Package spectate streams hosted games to websocket watchers. A watcher
// subscribes to one game and receives its summary after every change.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/session"
)

// Message types.
const (
	TypeWatch       = "watch"
	TypeGameState   = "game_state"
	TypeGameRemoved = "game_removed"
	TypeError       = "error"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Type   string     `json:"type"`
	GameID string     `json:"game_id,omitempty"`
	Data   *GameState `json:"data,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// GameState is the payload of a game_state message.
type GameState struct {
	Lifecycle string       `json:"lifecycle"`
	Steps     int          `json:"steps"`
	Expected  string       `json:"expected"`
	State     game.Summary `json:"state"`
}

// Source looks up hosted games.
type Source interface {
	GetGame(id string) (*session.Session, error)
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	// dropped is set by Run once send is closed.
	dropped bool
}

type subscription struct {
	client  *client
	gameID  string
	initial []byte
}

type broadcast struct {
	gameID  string
	payload []byte
}

// Hub fans game updates out to the watchers of each game. It implements
// session.Observer.
type Hub struct {
	source   Source
	logger   *zap.Logger
	upgrader websocket.Upgrader

	register   chan subscription
	unregister chan *client
	broadcast  chan broadcast
	done       chan struct{}

	// owned by Run
	clients map[*client]string
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub(source Source, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		source: source,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		register:   make(chan subscription),
		unregister: make(chan *client),
		broadcast:  make(chan broadcast, 64),
		done:       make(chan struct{}),
		clients:    make(map[*client]string),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			h.drop(c)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.register:
			if sub.client.dropped {
				continue
			}
			h.clients[sub.client] = sub.gameID
			h.deliver(sub.client, sub.initial)
			h.logger.Debug("watcher subscribed", zap.String("game_id", sub.gameID))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}

		case b := <-h.broadcast:
			for c, gameID := range h.clients {
				if gameID == b.gameID {
					h.deliver(c, b.payload)
				}
			}
		}
	}
}

// deliver queues a frame, dropping a watcher that cannot keep up.
func (h *Hub) deliver(c *client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.drop(c)
		h.logger.Warn("dropped slow watcher")
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	c.dropped = true
	close(c.send)
}

func encode(msg Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return data
}

func stateMessage(snap session.Snapshot) Message {
	return Message{
		Type:   TypeGameState,
		GameID: snap.ID,
		Data: &GameState{
			Lifecycle: snap.Lifecycle,
			Steps:     snap.Steps,
			Expected:  snap.Expected.String(),
			State:     snap.Summary,
		},
	}
}

func (h *Hub) publish(b broadcast) {
	select {
	case h.broadcast <- b:
	case <-h.done:
	}
}

// GameUpdated broadcasts a game's new state to its watchers.
func (h *Hub) GameUpdated(snap session.Snapshot) {
	h.publish(broadcast{gameID: snap.ID, payload: encode(stateMessage(snap))})
}

// GameRemoved tells a game's watchers it is gone.
func (h *Hub) GameRemoved(id string) {
	h.publish(broadcast{gameID: id, payload: encode(Message{Type: TypeGameRemoved, GameID: id})})
}

// ServeHTTP upgrades the request to a websocket watcher connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 256)}
	go c.writePump()
	go h.readPump(c)
}

// readPump handles watch requests until the connection closes. The send
// channel belongs to readPump until the first subscription and to Run after.
func (h *Hub) readPump(c *client) {
	registered := false
	defer func() {
		c.conn.Close()
		if !registered {
			close(c.send)
			return
		}
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != TypeWatch {
			continue
		}

		var initial []byte
		sess, err := h.source.GetGame(msg.GameID)
		if err != nil {
			initial = encode(Message{Type: TypeError, GameID: msg.GameID, Error: err.Error()})
		} else {
			initial = encode(stateMessage(sess.Snapshot()))
		}
		select {
		case h.register <- subscription{client: c, gameID: msg.GameID, initial: initial}:
			registered = true
		case <-h.done:
			return
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

package spectate

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tcgsim/tcgsim/internal/config"
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/session"
)

func startHub(t *testing.T) (*session.Manager, string) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	mgr := session.NewManager(8, config.EngineConfig{}, "", logger)
	hub := NewHub(mgr, logger)
	mgr.SetObserver(hub)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return mgr, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// readUntil skips frames until one matches, tolerating a late creation
// broadcast arriving after the initial state.
func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	for i := 0; i < 5; i++ {
		msg := readMessage(t, conn)
		if match(msg) {
			return msg
		}
	}
	t.Fatal("expected frame not received")
	return Message{}
}

func advanced(msg Message) bool {
	return msg.Type == TypeGameState && msg.Data != nil && msg.Data.Steps == 1
}

func TestWatcherReceivesUpdates(t *testing.T) {
	mgr, url := startHub(t)
	sess, err := mgr.CreateGame(session.Options{Seed: 4})
	require.NoError(t, err)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(Message{Type: TypeWatch, GameID: sess.ID}))

	initial := readMessage(t, conn)
	assert.Equal(t, TypeGameState, initial.Type)
	assert.Equal(t, sess.ID, initial.GameID)
	require.NotNil(t, initial.Data)
	assert.Equal(t, session.StateCreated, initial.Data.Lifecycle)
	assert.Zero(t, initial.Data.Steps)

	_, err = mgr.Advance(context.Background(), sess.ID, game.PlayerInput(0, game.SwitchAction(2)))
	require.NoError(t, err)

	update := readUntil(t, conn, advanced)
	assert.Equal(t, session.StateRunning, update.Data.Lifecycle)
	assert.True(t, update.Data.State.Players[0].Characters[2].Active)

	require.NoError(t, mgr.RemoveGame(sess.ID))
	removed := readMessage(t, conn)
	assert.Equal(t, TypeGameRemoved, removed.Type)
	assert.Equal(t, sess.ID, removed.GameID)
}

func TestWatchUnknownGame(t *testing.T) {
	_, url := startHub(t)
	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(Message{Type: TypeWatch, GameID: "missing"}))

	msg := readMessage(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Contains(t, msg.Error, "not found")
}

func TestUpdatesOnlyReachWatchersOfThatGame(t *testing.T) {
	mgr, url := startHub(t)
	a, err := mgr.CreateGame(session.Options{Seed: 1})
	require.NoError(t, err)
	b, err := mgr.CreateGame(session.Options{Seed: 2})
	require.NoError(t, err)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(Message{Type: TypeWatch, GameID: b.ID}))
	assert.Equal(t, b.ID, readMessage(t, conn).GameID)

	_, err = mgr.Advance(context.Background(), a.ID, game.PlayerInput(0, game.SwitchAction(0)))
	require.NoError(t, err)
	_, err = mgr.Advance(context.Background(), b.ID, game.PlayerInput(0, game.SwitchAction(1)))
	require.NoError(t, err)

	msg := readUntil(t, conn, advanced)
	assert.Equal(t, b.ID, msg.GameID)
}

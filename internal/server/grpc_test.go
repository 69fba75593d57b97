package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/tcgsim/tcgsim/internal/config"
	"github.com/tcgsim/tcgsim/internal/session"
)

func startTestServer(t *testing.T, maxGames int) *Client {
	t.Helper()
	logger := zaptest.NewLogger(t)

	lis := bufconn.Listen(1 << 20)
	mgr := session.NewManager(maxGames, config.EngineConfig{LogEvents: true, LogCapacity: 64}, "", logger)
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(ChainUnaryInterceptors(
		RecoveryInterceptor(logger),
		LoggingInterceptor(logger),
	)))
	RegisterEngineServer(grpcServer, NewEngineServer(mgr, logger))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- grpcServer.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		grpcServer.GracefulStop()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
		}
	})
	return NewClient(conn)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func requireCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, status.Code(err), "error: %v", err)
}

func TestNewGameWaitsForStartingSelection(t *testing.T) {
	client := startTestServer(t, 10)
	ctx := testContext(t)

	resp, err := client.NewGame(ctx, &NewGameRequest{Seed: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.GameID)
	assert.Equal(t, session.StateCreated, resp.Lifecycle)
	assert.Equal(t, "PLAYER_INPUT", resp.Expected.Kind)
	assert.Equal(t, uint8(0), resp.Expected.Player)
	require.NotNil(t, resp.State)
	for _, p := range resp.State.Players {
		assert.Len(t, p.Hand, 5)
		assert.Len(t, p.Characters, 3)
	}

	actions, err := client.AvailableActions(ctx, &GameRequest{GameID: resp.GameID})
	require.NoError(t, err)
	require.Len(t, actions.Actions, 3)
	for i, a := range actions.Actions {
		assert.Equal(t, "SWITCH_CHARACTER", a.Kind)
		assert.Equal(t, uint8(i), a.CharIdx)
	}
}

func TestAdvanceStartsGameAndRejectsBadInput(t *testing.T) {
	client := startTestServer(t, 10)
	ctx := testContext(t)

	created, err := client.NewGame(ctx, &NewGameRequest{Seed: 3})
	require.NoError(t, err)
	id := created.GameID

	_, err = client.Advance(ctx, &AdvanceRequest{GameID: id, Action: Action{Player: 1, Kind: "SWITCH_CHARACTER"}})
	requireCode(t, err, codes.InvalidArgument)

	_, err = client.Advance(ctx, &AdvanceRequest{GameID: id, Action: Action{Player: 0, Kind: "DANCE"}})
	requireCode(t, err, codes.InvalidArgument)

	before, err := client.GetState(ctx, &GameRequest{GameID: id})
	require.NoError(t, err)
	assert.Equal(t, created.State.Hash, before.State.Hash, "rejected input must not change the game")

	resp, err := client.Advance(ctx, &AdvanceRequest{GameID: id, Action: Action{Player: 0, Kind: "SWITCH_CHARACTER", CharIdx: 1}})
	require.NoError(t, err)
	assert.Equal(t, session.StateRunning, resp.Lifecycle)
	assert.Equal(t, uint8(1), resp.Expected.Player)
	assert.True(t, resp.State.Players[0].Characters[1].Active)
	assert.Equal(t, 1, resp.Steps)
}

func TestUnknownAndMissingGames(t *testing.T) {
	client := startTestServer(t, 10)
	ctx := testContext(t)

	_, err := client.GetState(ctx, &GameRequest{GameID: "nope"})
	requireCode(t, err, codes.NotFound)

	_, err = client.AvailableActions(ctx, &GameRequest{})
	requireCode(t, err, codes.InvalidArgument)

	_, err = client.DeleteGame(ctx, &GameRequest{GameID: "nope"})
	requireCode(t, err, codes.NotFound)

	_, err = client.NewGame(ctx, &NewGameRequest{Lineup: "mirror"})
	requireCode(t, err, codes.InvalidArgument)
}

func TestMaxGamesAndDelete(t *testing.T) {
	client := startTestServer(t, 1)
	ctx := testContext(t)

	first, err := client.NewGame(ctx, &NewGameRequest{})
	require.NoError(t, err)

	_, err = client.NewGame(ctx, &NewGameRequest{})
	requireCode(t, err, codes.ResourceExhausted)

	deleted, err := client.DeleteGame(ctx, &GameRequest{GameID: first.GameID})
	require.NoError(t, err)
	assert.Equal(t, first.GameID, deleted.GameID)

	_, err = client.GetState(ctx, &GameRequest{GameID: first.GameID})
	requireCode(t, err, codes.NotFound)

	_, err = client.NewGame(ctx, &NewGameRequest{})
	require.NoError(t, err)
}

// pickAction prefers skills so cost-free games end quickly.
func pickAction(actions []Action) Action {
	for i := len(actions) - 1; i >= 0; i-- {
		if actions[i].Kind == "CAST_SKILL" {
			return actions[i]
		}
	}
	for _, a := range actions {
		if a.Kind != "END_ROUND" {
			return a
		}
	}
	return actions[0]
}

func TestPlayToCompletion(t *testing.T) {
	client := startTestServer(t, 10)
	ctx := testContext(t)

	created, err := client.NewGame(ctx, &NewGameRequest{Deterministic: true, IgnoreCosts: true})
	require.NoError(t, err)
	id := created.GameID

	var last *GameResponse
	for step := 0; step < 500; step++ {
		actions, err := client.AvailableActions(ctx, &GameRequest{GameID: id})
		require.NoError(t, err)
		if actions.Expected.Kind == "WINNER" {
			break
		}
		require.NotEmpty(t, actions.Actions, "step %d", step)

		last, err = client.Advance(ctx, &AdvanceRequest{GameID: id, Action: pickAction(actions.Actions)})
		require.NoError(t, err, "step %d", step)
	}

	require.NotNil(t, last)
	require.Equal(t, "WINNER", last.Expected.Kind)
	assert.Equal(t, session.StateFinished, last.Lifecycle)

	_, err = client.Advance(ctx, &AdvanceRequest{GameID: id, Action: Action{Kind: "END_ROUND"}})
	requireCode(t, err, codes.FailedPrecondition)
}

// Package server exposes hosted games over gRPC.
package server

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/session"
)

// engineServer implements EngineServer on top of a session manager.
type engineServer struct {
	logger     *zap.Logger
	sessionMgr *session.Manager
}

// NewEngineServer creates the engine service.
func NewEngineServer(sessionMgr *session.Manager, logger *zap.Logger) EngineServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &engineServer{
		logger:     logger,
		sessionMgr: sessionMgr,
	}
}

// statusFromError maps engine and session failures to gRPC codes.
func statusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case game.IsInputError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, session.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, session.ErrUnknownLineup):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, session.ErrTooManyGames):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, session.ErrFinished), errors.Is(err, session.ErrNotPlayerInput):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func (s *engineServer) lookup(gameID string) (*session.Session, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "game_id is required")
	}
	sess, err := s.sessionMgr.GetGame(gameID)
	if err != nil {
		return nil, statusFromError(err)
	}
	return sess, nil
}

// NewGame deals a new game and returns it waiting for the starting selection.
func (s *engineServer) NewGame(ctx context.Context, req *NewGameRequest) (*GameResponse, error) {
	sess, err := s.sessionMgr.CreateGame(session.Options{
		Lineup:        strings.TrimSpace(req.Lineup),
		Seed:          req.Seed,
		Deterministic: req.Deterministic,
		IgnoreCosts:   req.IgnoreCosts,
	})
	if err != nil {
		s.logger.Warn("new game failed", zap.Error(err))
		return nil, statusFromError(err)
	}
	return toGameResponse(sess.Snapshot(), true), nil
}

// Advance applies one player input. Rejected inputs leave the game unchanged.
func (s *engineServer) Advance(ctx context.Context, req *AdvanceRequest) (*GameResponse, error) {
	sess, err := s.lookup(req.GameID)
	if err != nil {
		return nil, err
	}
	input, err := toInput(req.Action)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	snap, err := s.sessionMgr.Advance(ctx, sess.ID, input)
	if err != nil {
		s.logger.Debug("advance rejected",
			zap.String("game_id", sess.ID),
			zap.Stringer("input", input),
			zap.Error(err),
		)
		return nil, statusFromError(err)
	}

	s.logger.Debug("game advanced",
		zap.String("game_id", sess.ID),
		zap.Stringer("input", input),
		zap.Stringer("expected", snap.Expected),
	)
	return toGameResponse(snap, true), nil
}

// AvailableActions lists the legal inputs for the player expected to act.
func (s *engineServer) AvailableActions(ctx context.Context, req *GameRequest) (*ActionsResponse, error) {
	sess, err := s.lookup(req.GameID)
	if err != nil {
		return nil, err
	}
	snap := sess.Snapshot()
	actions := make([]Action, 0, len(snap.Actions))
	for _, in := range snap.Actions {
		actions = append(actions, fromInput(in))
	}
	return &ActionsResponse{
		GameID:   snap.ID,
		Expected: toExpected(snap.Expected),
		Actions:  actions,
	}, nil
}

// GetState returns the display summary of a game.
func (s *engineServer) GetState(ctx context.Context, req *GameRequest) (*GameResponse, error) {
	sess, err := s.lookup(req.GameID)
	if err != nil {
		return nil, err
	}
	return toGameResponse(sess.Snapshot(), true), nil
}

// DeleteGame removes a game.
func (s *engineServer) DeleteGame(ctx context.Context, req *GameRequest) (*DeleteGameResponse, error) {
	gameID := strings.TrimSpace(req.GameID)
	if gameID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "game_id is required")
	}
	if err := s.sessionMgr.RemoveGame(gameID); err != nil {
		return nil, statusFromError(err)
	}
	return &DeleteGameResponse{GameID: gameID}, nil
}

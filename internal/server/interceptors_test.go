package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/session"
)

func TestChainUnaryInterceptorsOrder(t *testing.T) {
	var order []string
	mark := func(name string) grpc.UnaryServerInterceptor {
		return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
			order = append(order, name)
			return handler(ctx, req)
		}
	}
	chain := ChainUnaryInterceptors(mark("outer"), mark("inner"))

	resp, err := chain(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: methodGetState},
		func(ctx context.Context, req any) (any, error) {
			order = append(order, "handler")
			return req, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "req", resp)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRecoveryInterceptorConvertsPanic(t *testing.T) {
	interceptor := RecoveryInterceptor(zaptest.NewLogger(t))
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: methodAdvance},
		func(ctx context.Context, req any) (any, error) {
			panic("boom")
		})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want codes.Code
	}{
		{&game.InputError{Reason: game.ErrWrongPlayer}, codes.InvalidArgument},
		{session.ErrNotFound, codes.NotFound},
		{session.ErrTooManyGames, codes.ResourceExhausted},
		{session.ErrFinished, codes.FailedPrecondition},
		{status.Error(codes.Unavailable, "x"), codes.Unavailable},
		{assert.AnError, codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, status.Code(statusFromError(tc.err)), "%v", tc.err)
	}
	assert.NoError(t, statusFromError(nil))
}

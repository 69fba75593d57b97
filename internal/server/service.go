package server

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified name of the engine service.
const ServiceName = "tcg.engine.v1.Engine"

const (
	methodNewGame          = "/" + ServiceName + "/NewGame"
	methodAdvance          = "/" + ServiceName + "/Advance"
	methodAvailableActions = "/" + ServiceName + "/AvailableActions"
	methodGetState         = "/" + ServiceName + "/GetState"
	methodDeleteGame       = "/" + ServiceName + "/DeleteGame"
)

// EngineServer is the server API for the engine service.
type EngineServer interface {
	NewGame(context.Context, *NewGameRequest) (*GameResponse, error)
	Advance(context.Context, *AdvanceRequest) (*GameResponse, error)
	AvailableActions(context.Context, *GameRequest) (*ActionsResponse, error)
	GetState(context.Context, *GameRequest) (*GameResponse, error)
	DeleteGame(context.Context, *GameRequest) (*DeleteGameResponse, error)
}

// RegisterEngineServer registers srv with a gRPC server.
func RegisterEngineServer(s grpc.ServiceRegistrar, srv EngineServer) {
	s.RegisterService(&engineServiceDesc, srv)
}

var engineServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NewGame", Handler: unaryHandler(methodNewGame, EngineServer.NewGame)},
		{MethodName: "Advance", Handler: unaryHandler(methodAdvance, EngineServer.Advance)},
		{MethodName: "AvailableActions", Handler: unaryHandler(methodAvailableActions, EngineServer.AvailableActions)},
		{MethodName: "GetState", Handler: unaryHandler(methodGetState, EngineServer.GetState)},
		{MethodName: "DeleteGame", Handler: unaryHandler(methodDeleteGame, EngineServer.DeleteGame)},
	},
	Streams: []grpc.StreamDesc{},
}

// unaryHandler adapts a typed method to grpc.MethodHandler, decoding the
// request and routing it through the server's interceptor.
func unaryHandler[Req, Resp any](fullMethod string, call func(EngineServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EngineServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EngineServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Client is a typed client for the engine service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection. Every call is sent with the JSON codec.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	callOpts := make([]grpc.CallOption, 0, len(opts)+1)
	callOpts = append(callOpts, grpc.CallContentSubtype(codecName))
	callOpts = append(callOpts, opts...)
	return c.cc.Invoke(ctx, method, in, out, callOpts...)
}

func (c *Client) NewGame(ctx context.Context, in *NewGameRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	out := new(GameResponse)
	if err := c.invoke(ctx, methodNewGame, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Advance(ctx context.Context, in *AdvanceRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	out := new(GameResponse)
	if err := c.invoke(ctx, methodAdvance, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AvailableActions(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*ActionsResponse, error) {
	out := new(ActionsResponse)
	if err := c.invoke(ctx, methodAvailableActions, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetState(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*GameResponse, error) {
	out := new(GameResponse)
	if err := c.invoke(ctx, methodGetState, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteGame(ctx context.Context, in *GameRequest, opts ...grpc.CallOption) (*DeleteGameResponse, error) {
	out := new(DeleteGameResponse)
	if err := c.invoke(ctx, methodDeleteGame, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

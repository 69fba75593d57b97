package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/tcgsim/tcgsim/internal/config"
	"github.com/tcgsim/tcgsim/internal/game"
	"github.com/tcgsim/tcgsim/internal/logging"
	"github.com/tcgsim/tcgsim/internal/server"
	"github.com/tcgsim/tcgsim/internal/session"
	"github.com/tcgsim/tcgsim/internal/spectate"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting engine server",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int("characters", game.CharacterCount()),
		zap.Int("cards", game.CardCount()),
	)

	// Create context that listens for termination signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize session manager
	sessionMgr := session.NewManager(cfg.Server.MaxGames, cfg.Engine, cfg.Server.ReplayDir, logger)
	logger.Info("session manager initialized",
		zap.Int("max_games", cfg.Server.MaxGames),
		zap.String("replay_dir", cfg.Server.ReplayDir),
	)

	// Start the spectator feed if enabled
	var wsServer *http.Server
	if addr := cfg.Server.WebSocket.Address; addr != "" {
		hub := spectate.NewHub(sessionMgr, logger)
		sessionMgr.SetObserver(hub)
		go hub.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		wsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			logger.Info("starting spectator feed", zap.String("address", addr))
			if wsErr := wsServer.ListenAndServe(); wsErr != nil && !errors.Is(wsErr, http.ErrServerClosed) {
				logger.Error("spectator feed error", zap.Error(wsErr))
			}
		}()
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(server.ChainUnaryInterceptors(
			server.RecoveryInterceptor(logger),
			server.LoggingInterceptor(logger),
		)),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    30 * time.Second,
			Timeout: 10 * time.Second,
		}),
		grpc.MaxConcurrentStreams(uint32(cfg.Server.GRPC.MaxConcurrentStreams)),
	)

	server.RegisterEngineServer(grpcServer, server.NewEngineServer(sessionMgr, logger))

	lis, err := net.Listen("tcp", cfg.Server.GRPC.Address)
	if err != nil {
		logger.Fatal("failed to listen", zap.Error(err))
	}

	// Start gRPC server
	go func() {
		logger.Info("starting gRPC server", zap.String("address", cfg.Server.GRPC.Address))
		if serveErr := grpcServer.Serve(lis); serveErr != nil {
			logger.Error("gRPC server error", zap.Error(serveErr))
		}
	}()

	// Wait for termination signal
	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	grpcServer.GracefulStop()
	if wsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := wsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("spectator feed shutdown", zap.Error(err))
		}
		shutdownCancel()
	}
	sessionMgr.CloseAll()

	logger.Info("engine server stopped")
}

// Package main runs the satoshi index daemon. It follows the node's active
// chain, maintains the ordinal index, and serves index queries over JSON-RPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/satindex-backend/internal/bitcoin"
	"github.com/goodnatureofminers/satindex-backend/internal/metrics"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/engine"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/model"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/query"
	"github.com/goodnatureofminers/satindex-backend/internal/ordinal/store"
	ordsync "github.com/goodnatureofminers/satindex-backend/internal/ordinal/sync"
	"github.com/goodnatureofminers/satindex-backend/internal/transport"
)

type config struct {
	DBPath       string `long:"db-path" env:"SATINDEX_DB_PATH" description:"index database directory" default:"./satindex-db"`
	Network      string `long:"network" env:"SATINDEX_NETWORK" description:"network name" default:"mainnet"`
	RPCURL       string `long:"rpc-url" env:"SATINDEX_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser      string `long:"rpc-user" env:"SATINDEX_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword  string `long:"rpc-password" env:"SATINDEX_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRateLimit int    `long:"rpc-rate-limit" env:"SATINDEX_RPC_RATE_LIMIT" description:"max node RPC calls per second, 0 for unlimited" default:"0"`
	ZMQAddr      string `long:"zmq-addr" env:"SATINDEX_ZMQ_ADDR" description:"node zmq hashblock endpoint"`
	ListenAddr   string `long:"listen" env:"SATINDEX_LISTEN" description:"JSON-RPC listen address" default:":8334"`
	MetricsAddr  string `long:"metrics-listen" env:"SATINDEX_METRICS_LISTEN" description:"metrics listen address" default:":9090"`
	NoIndex      bool   `long:"no-index" env:"SATINDEX_NO_INDEX" description:"serve without maintaining the index"`
	Prune        bool   `long:"prune" env:"SATINDEX_PRUNE" description:"drop spent entries once they fall past the prune horizon"`
	RewriteSpent bool   `long:"rewrite-spent" env:"SATINDEX_REWRITE_SPENT" description:"keep spent entries, marked spent"`
	PruneHorizon int32  `long:"prune-horizon" env:"SATINDEX_PRUNE_HORIZON" description:"blocks a spent entry survives before pruning" default:"6"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.Prune && cfg.RewriteSpent {
		logger.Fatal("--prune and --rewrite-spent are mutually exclusive")
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("satindexd failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	rpc, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init node rpc client: %w", err)
	}
	defer func() {
		rpc.Shutdown()
		rpc.WaitForShutdown()
	}()

	node := bitcoin.NewClient(rpc, cfg.RPCRateLimit, metrics.NewRPCClient(cfg.Network))

	var (
		querySvc transport.QueryService
		health   transport.HealthSource
		follower *ordsync.FollowerService
	)
	if !cfg.NoIndex {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open index store: %w", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("close index store", zap.Error(closeErr))
			}
		}()

		eng, err := engine.New(st, indexMode(cfg), cfg.PruneHorizon, metrics.NewIndexWriter(cfg.Network), logger)
		if err != nil {
			return fmt.Errorf("init index engine: %w", err)
		}
		querySvc = query.New(st, eng.Mode(), logger)
		health = eng

		blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
		if err != nil {
			return err
		}
		follower, err = ordsync.NewFollowerService(node, eng, metrics.NewFollower(cfg.Network), logger, blockSignal)
		if err != nil {
			return fmt.Errorf("init follower: %w", err)
		}
	}

	handler := transport.NewRPCHandler(querySvc, health, logger)
	rpcServer := newHTTPServer(cfg.ListenAddr, cors.Default().Handler(handler.Routes()))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := newHTTPServer(cfg.MetricsAddr, metricsMux)

	serve(ctx, rpcServer, "json-rpc", logger)
	serve(ctx, metricsServer, "metrics", logger)

	if follower == nil {
		logger.Info("index disabled; serving queries only")
		<-ctx.Done()
		return ctx.Err()
	}

	logger.Info("starting chain follower",
		zap.String("mode", string(indexMode(cfg))),
		zap.String("network", cfg.Network),
	)
	return follower.Run(ctx)
}

func indexMode(cfg config) model.Mode {
	switch {
	case cfg.Prune:
		return model.ModePrune
	case cfg.RewriteSpent:
		return model.ModeRewriteSpent
	default:
		return model.ModeFull
	}
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
}

func serve(ctx context.Context, s *http.Server, name string, logger *zap.Logger) {
	go func() {
		logger.Info("starting http server", zap.String("server", name), zap.String("addr", s.Addr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.String("server", name), zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down http server", zap.String("server", name))
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown http server", zap.String("server", name), zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}

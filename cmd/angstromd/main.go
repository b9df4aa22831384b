// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// angstromd runs one Angstrom validator: it validates incoming orders,
// holds them in the order pool, runs the per-block consensus round,
// and serves the JSON-RPC/websocket and Prometheus endpoints other
// services scrape. Wiring follows config's flags→viper→config flow
// directly; there are no chain-import subcommands here to justify a
// second CLI framework on top of pflag/viper.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/luxfi/geth/crypto"
	"github.com/luxfi/geth/log"
	"github.com/spf13/pflag"

	"github.com/angstrom-protocol/angstrom/bundle"
	"github.com/angstrom-protocol/angstrom/config"
	"github.com/angstrom-protocol/angstrom/leader"
	"github.com/angstrom-protocol/angstrom/matching"
	"github.com/angstrom-protocol/angstrom/metricsreport"
	"github.com/angstrom-protocol/angstrom/oracle"
	"github.com/angstrom-protocol/angstrom/orderpool"
	"github.com/angstrom-protocol/angstrom/peerstore"
	"github.com/angstrom-protocol/angstrom/registry"
	"github.com/angstrom-protocol/angstrom/rpcapi"
	"github.com/angstrom-protocol/angstrom/types"
	"github.com/angstrom-protocol/angstrom/validation"
)

const blockInterval = 12 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("angstromd: couldn't build config: %w", err)
	}
	if v.GetBool(config.VersionKey) {
		fmt.Println(config.Version)
		return nil
	}

	log.SetDefault(log.NewLogger(log.NewTerminalHandler(os.Stderr, true)))

	cfg, err := config.BuildConfig(v)
	if err != nil {
		return fmt.Errorf("angstromd: %w", err)
	}

	key, err := crypto.HexToECDSA(cfg.PrivateKeyHex)
	if err != nil {
		return fmt.Errorf("angstromd: parsing --private-key: %w", err)
	}
	self := crypto.PubkeyToAddress(key.PublicKey)

	peersPath, err := cfg.ResolvePeersFile(self)
	if err != nil {
		return fmt.Errorf("angstromd: %w", err)
	}
	peers, err := peerstore.Load(peersPath)
	if err != nil {
		return fmt.Errorf("angstromd: loading cached peers: %w", err)
	}
	log.Info("loaded cached peers", "count", len(peers.Peers), "path", peersPath)

	metrics := metricsreport.New()
	gas := oracle.NewTableOracle(nil, nil)
	reg := registry.New(noopTickLoader{})
	validator := validation.New(cfg.DomainSeparator(), noopStateProvider{}, gas, reg, runtime.NumCPU())
	pool := orderpool.New(1024)
	schedule := leader.NewSchedule(cfg.Validators)

	attestations := newAttestationBus()
	bcast := &gossipBroadcaster{attestations: attestations, metrics: metrics}
	encoder := &bundle.Encoder{Orders: make(map[types.OrderId]types.Order)}
	react := newReactor(self, key, schedule, encoder, noopL1Submitter{}, bcast, metrics)

	orderService := &rpcapi.OrderService{Pool: pool, Validator: validator, Gas: gas}
	consensusService := &rpcapi.ConsensusService{View: react}
	subs := rpcapi.NewSubscriptionHandler(pool, attestations)
	mux := rpcapi.NewServer(orderService, consensusService, subs)

	rpcServer := &http.Server{Addr: cfg.RPCAddr, Handler: mux}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info("serving JSON-RPC", "addr", cfg.RPCAddr)
		if err := rpcServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("rpc server stopped", "err", err)
		}
	}()
	go func() {
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", "err", err)
		}
	}()

	go react.Run(ctx, blockInterval, func(height uint64) []matching.PoolInput {
		return nil
	})

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = rpcServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	if err := peerstore.Save(peersPath, peers); err != nil {
		log.Error("saving cached peers", "err", err)
	}
	return nil
}

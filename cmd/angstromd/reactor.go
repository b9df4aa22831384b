// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"crypto/ecdsa"
	"sync"
	"time"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"
	"github.com/luxfi/log"

	"github.com/angstrom-protocol/angstrom/bundle"
	"github.com/angstrom-protocol/angstrom/leader"
	"github.com/angstrom-protocol/angstrom/matching"
	"github.com/angstrom-protocol/angstrom/metricsreport"
	"github.com/angstrom-protocol/angstrom/roundconsensus"
	"github.com/angstrom-protocol/angstrom/types"
)

// gossipBroadcaster implements roundconsensus.Broadcaster. Peer fan-out
// is the network manager's job (out of scope here); this stand-in
// only publishes empty-block attestations onto the local websocket
// feed and records that a proposal/attestation went out.
type gossipBroadcaster struct {
	attestations *attestationBus
	metrics      *metricsreport.Recorder
}

func (b *gossipBroadcaster) Broadcast(msg any) error {
	switch m := msg.(type) {
	case types.AttestAngstromBlockEmpty:
		b.attestations.Publish(m)
		b.metrics.RecordEmptyAttestation()
	case types.Proposal:
		b.metrics.RecordProposalBroadcast()
		log.Info("broadcast proposal", "height", m.BlockHeight, "pools", len(m.Solutions))
	default:
		log.Warn("broadcast of unrecognized consensus message", "type", msg)
	}
	return nil
}

// reactor drives one round of consensus per block height and
// satisfies rpcapi.ConsensusView for the RPC layer. It runs the
// single-validator happy path end to end (this node is always its own
// sole pre-proposal source); multi-validator peer exchange is wired
// through Broadcaster/ReceivePreProposal by the network manager,
// out of scope here.
type reactor struct {
	self     common.Address
	key      *ecdsa.PrivateKey
	schedule *leader.Schedule
	encoder  *bundle.Encoder
	submit   roundconsensus.L1Submitter
	bcast    roundconsensus.Broadcaster
	metrics  *metricsreport.Recorder

	mu    sync.RWMutex
	round *roundconsensus.Round
}

func newReactor(self common.Address, key *ecdsa.PrivateKey, schedule *leader.Schedule, encoder *bundle.Encoder, submit roundconsensus.L1Submitter, bcast roundconsensus.Broadcaster, metrics *metricsreport.Recorder) *reactor {
	return &reactor{self: self, key: key, schedule: schedule, encoder: encoder, submit: submit, bcast: bcast, metrics: metrics}
}

// Schedule implements rpcapi.ConsensusView.
func (r *reactor) Schedule() *leader.Schedule {
	return r.schedule
}

// ActiveRound implements rpcapi.ConsensusView.
func (r *reactor) ActiveRound() *roundconsensus.Round {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.round
}

func (r *reactor) sign(digest []byte) ([]byte, error) {
	return crypto.Sign(digest, r.key)
}

// RunBlock executes one full round at height against pools, the
// matcher inputs sourced from the order pool and AMM registry for
// this block.
func (r *reactor) RunBlock(ctx context.Context, height uint64, pools []matching.PoolInput) error {
	round := roundconsensus.NewRound(height, r.self, r.schedule)
	r.mu.Lock()
	r.round = round
	r.mu.Unlock()
	r.metrics.SetRoundHeight(height)
	r.metrics.SetRoundState(round.State().String(), metricsreport.RoundStates)

	if _, err := round.BuildPreProposal(nil, nil, r.sign); err != nil {
		return err
	}
	r.metrics.RecordPreProposalReceived()

	if _, err := round.EnterAggregation(r.sign); err != nil {
		return err
	}
	r.metrics.SetRoundState(round.State().String(), metricsreport.RoundStates)

	if round.State() != roundconsensus.StatePropose && round.State() != roundconsensus.StateWaitForProposer {
		log.Warn("round did not reach quorum this block", "height", height)
		return nil
	}

	if !round.IsLeader() {
		r.metrics.SetRoundState(round.State().String(), metricsreport.RoundStates)
		return nil
	}

	err := round.RunProposer(ctx, pools, r.encoder, r.submit, r.bcast, r.sign)
	r.metrics.SetRoundState(round.State().String(), metricsreport.RoundStates)
	return err
}

// Run advances one block every interval until ctx is canceled,
// sourcing pools from the caller each tick.
func (r *reactor) Run(ctx context.Context, interval time.Duration, poolsAt func(height uint64) []matching.PoolInput) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var height uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			height++
			if err := r.RunBlock(ctx, height, poolsAt(height)); err != nil {
				log.Error("consensus round failed", "height", height, "err", err)
			}
		}
	}
}

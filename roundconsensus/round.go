// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roundconsensus

import (
	"bytes"
	"sort"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"

	"github.com/angstrom-protocol/angstrom/leader"
	"github.com/angstrom-protocol/angstrom/types"
)

// Round carries one block height's consensus state. A new Round is
// created at block start and discarded once it reaches StateTerminal;
// the terminal reset is simply constructing the next Round.
type Round struct {
	Height uint64
	Self   common.Address
	Leader common.Address

	schedule *leader.Schedule
	state    State

	preProposals      map[common.Address]types.PreProposal
	aggregations      map[common.Address]types.PreProposalAggregation
	emptyAttestations map[common.Address]types.AttestAngstromBlockEmpty
}

// NewRound starts a round at height, advancing schedule by one block
// to derive this height's leader.
func NewRound(height uint64, self common.Address, schedule *leader.Schedule) *Round {
	winner := schedule.Advance()
	return &Round{
		Height:            height,
		Self:              self,
		Leader:            winner.Address,
		schedule:          schedule,
		state:             StatePrePropose,
		preProposals:      make(map[common.Address]types.PreProposal),
		aggregations:      make(map[common.Address]types.PreProposalAggregation),
		emptyAttestations: make(map[common.Address]types.AttestAngstromBlockEmpty),
	}
}

// State reports the round's current phase.
func (r *Round) State() State {
	return r.state
}

// IsLeader reports whether this validator is the round's proposer.
func (r *Round) IsLeader() bool {
	return r.Self == r.Leader
}

// BuildPreProposal signs and records this validator's own snapshot of
// the orders it is willing to settle.
func (r *Round) BuildPreProposal(limit, searcher []types.StoredOrder, sign Signer) (types.PreProposal, error) {
	pp := types.PreProposal{
		BlockHeight:    r.Height,
		Source:         r.Self,
		LimitOrders:    limit,
		SearcherOrders: searcher,
	}
	digest := preProposalDigest(pp)
	sig, err := sign(digest[:])
	if err != nil {
		return types.PreProposal{}, err
	}
	pp.Signature = sig
	r.preProposals[r.Self] = pp
	return pp, nil
}

// ReceivePreProposal merges an incoming pre-proposal into the round.
// An identical resend from a source already on file is accepted
// idempotently; a different payload from the same source is rejected
//.
func (r *Round) ReceivePreProposal(pp types.PreProposal) error {
	if r.state != StatePrePropose {
		return ErrUnexpectedMessage
	}
	if pp.BlockHeight != r.Height {
		return ErrWrongHeight
	}
	if existing, ok := r.preProposals[pp.Source]; ok {
		if preProposalDigest(existing) != preProposalDigest(pp) {
			return ErrConflictingMessage
		}
		return nil
	}
	r.preProposals[pp.Source] = pp
	log.Debug("accepted pre-proposal", "height", r.Height, "source", pp.Source)
	return nil
}

// orderedPreProposals returns every accepted pre-proposal sorted by
// source address, for deterministic aggregation content.
func (r *Round) orderedPreProposals() []types.PreProposal {
	out := make([]types.PreProposal, 0, len(r.preProposals))
	for _, pp := range r.preProposals {
		out = append(out, pp)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Source[:], out[j].Source[:]) < 0
	})
	return out
}

// EnterAggregation closes the PrePropose deadline, signs this
// validator's aggregation of everything it collected, and transitions
// to StatePreProposeAggregation.
func (r *Round) EnterAggregation(sign Signer) (types.PreProposalAggregation, error) {
	if r.state != StatePrePropose {
		return types.PreProposalAggregation{}, ErrUnexpectedMessage
	}
	agg := types.PreProposalAggregation{
		BlockHeight:  r.Height,
		Source:       r.Self,
		PreProposals: r.orderedPreProposals(),
	}
	digest := aggregationDigest(agg)
	sig, err := sign(digest[:])
	if err != nil {
		return types.PreProposalAggregation{}, err
	}
	agg.Signature = sig
	r.state = StatePreProposeAggregation
	r.aggregations[r.Self] = agg
	log.Info("entered pre-proposal aggregation", "height", r.Height)
	r.advanceOnQuorum()
	return agg, nil
}

// advanceOnQuorum transitions out of StatePreProposeAggregation once
// some consistency group's combined voting power crosses quorum
//.
func (r *Round) advanceOnQuorum() {
	if r.state != StatePreProposeAggregation {
		return
	}
	if key, ok := r.quorumKey(); ok {
		if r.IsLeader() {
			r.state = StatePropose
		} else {
			r.state = StateWaitForProposer
		}
		log.Info("aggregation quorum reached", "height", r.Height, "state", r.state, "key", key)
	}
}

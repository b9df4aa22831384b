// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roundconsensus

import (
	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
)

// quorumNum/quorumDen express the >=2/3 voting-power threshold,
// mirroring warp/aggregator.go's own VerifyWeight-style fixed-ratio
// threshold check.
const (
	quorumNum = 2
	quorumDen = 3
)

// ReceiveAggregation merges an incoming aggregation into the round. As
// soon as some consistency group (aggregations agreeing on the same
// underlying pre-proposal set) crosses the quorum threshold, the round
// advances to Propose (if this validator is the leader) or
// WaitForProposer.
func (r *Round) ReceiveAggregation(agg types.PreProposalAggregation) error {
	if r.state != StatePreProposeAggregation {
		return ErrUnexpectedMessage
	}
	if agg.BlockHeight != r.Height {
		return ErrWrongHeight
	}
	if existing, ok := r.aggregations[agg.Source]; ok {
		if aggregationDigest(existing) != aggregationDigest(agg) {
			return ErrConflictingMessage
		}
		return nil
	}
	r.aggregations[agg.Source] = agg
	r.advanceOnQuorum()
	return nil
}

// quorumKey returns the consistency key of the first aggregation group
// whose combined voting power meets the quorum threshold, if any.
func (r *Round) quorumKey() (common.Hash, bool) {
	weights := make(map[common.Address]uint64, len(r.schedule.Validators()))
	for _, v := range r.schedule.Validators() {
		weights[v.Address] = v.VotingPower
	}

	groups := make(map[common.Hash]uint64)
	for source, agg := range r.aggregations {
		key := consistencyKey(agg.PreProposals)
		groups[key] += weights[source]
	}

	total := r.schedule.TotalVotingPower()
	for key, weight := range groups {
		if weight*quorumDen >= total*quorumNum {
			return key, true
		}
	}
	return common.Hash{}, false
}

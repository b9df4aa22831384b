// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roundconsensus

import (
	"context"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"

	"github.com/angstrom-protocol/angstrom/matching"
	"github.com/angstrom-protocol/angstrom/types"
)

// ValidateProposal implements the follower half of WaitForProposer:
// verify the leader's signature, then re-run the
// matcher deterministically over the same pools and require the
// result to match the proposal bit-for-bit. pools must reflect the
// same aggregated order set and AMM snapshots the leader matched
// against.
func (r *Round) ValidateProposal(ctx context.Context, p types.Proposal, pools []matching.PoolInput) error {
	if r.state != StateWaitForProposer {
		return ErrUnexpectedMessage
	}
	if p.BlockHeight != r.Height {
		return ErrWrongHeight
	}
	if p.Proposer != r.Leader {
		return ErrNotLeader
	}

	digest := proposalDigest(p)
	recovered, err := types.RecoverSigner(digest, p.Signature)
	if err != nil || recovered != p.Proposer {
		return ErrInvalidSignature
	}

	solutions, err := matching.SolveAll(ctx, pools, 0)
	if err != nil {
		return err
	}
	if len(solutions) != len(p.Solutions) {
		return ErrSolutionMismatch
	}
	for i, sol := range solutions {
		if !solutionsEqual(sol, &p.Solutions[i]) {
			return ErrSolutionMismatch
		}
	}

	r.state = StateTerminal
	log.Info("validated proposal", "height", r.Height, "proposer", p.Proposer)
	return nil
}

func solutionsEqual(a, b *types.PoolSolution) bool {
	if a.PoolId != b.PoolId || a.Fee != b.Fee {
		return false
	}
	if a.UCP.Cmp(b.UCP) != 0 {
		return false
	}
	if (a.RewardT0 == nil) != (b.RewardT0 == nil) {
		return false
	}
	if a.RewardT0 != nil && a.RewardT0.Cmp(b.RewardT0) != 0 {
		return false
	}
	if len(a.Limit) != len(b.Limit) {
		return false
	}
	for i := range a.Limit {
		if a.Limit[i].OrderID != b.Limit[i].OrderID || a.Limit[i].State != b.Limit[i].State {
			return false
		}
		if (a.Limit[i].Quantity == nil) != (b.Limit[i].Quantity == nil) {
			return false
		}
		if a.Limit[i].Quantity != nil && a.Limit[i].Quantity.Cmp(b.Limit[i].Quantity) != 0 {
			return false
		}
	}
	if (a.Searcher == nil) != (b.Searcher == nil) || (a.Searcher != nil && a.Searcher.ID != b.Searcher.ID) {
		return false
	}
	if a.AmmQuantity.T0Signed().Cmp(b.AmmQuantity.T0Signed()) != 0 || a.AmmQuantity.T1Signed().Cmp(b.AmmQuantity.T1Signed()) != 0 {
		return false
	}
	return true
}

// ReceiveEmptyAttestation merges an incoming empty-block attestation.
// Once its combined voting power crosses quorum, the round accepts the
// block as empty and terminates.
func (r *Round) ReceiveEmptyAttestation(source common.Address, att types.AttestAngstromBlockEmpty) bool {
	if r.state != StateWaitForProposer {
		return false
	}
	if att.BlockNumber != r.Height+1 {
		return false
	}
	r.emptyAttestations[source] = att

	weights := make(map[common.Address]uint64, len(r.schedule.Validators()))
	for _, v := range r.schedule.Validators() {
		weights[v.Address] = v.VotingPower
	}
	var weight uint64
	for addr := range r.emptyAttestations {
		weight += weights[addr]
	}
	total := r.schedule.TotalVotingPower()
	if weight*quorumDen >= total*quorumNum {
		r.state = StateTerminal
		log.Info("empty block attestation quorum reached", "height", r.Height)
		return true
	}
	return false
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roundconsensus

import (
	"context"

	"github.com/luxfi/log"

	"github.com/angstrom-protocol/angstrom/matching"
	"github.com/angstrom-protocol/angstrom/types"
)

// RunProposer executes the leader-only Propose state: match every
// pool, encode and submit the settlement bundle, and broadcast either
// the resulting Proposal or, on any failure, an
// AttestAngstromBlockEmpty for the block.
func (r *Round) RunProposer(ctx context.Context, pools []matching.PoolInput, encoder BundleEncoder, submitter L1Submitter, broadcaster Broadcaster, sign Signer) error {
	if r.state != StatePropose {
		return ErrUnexpectedMessage
	}

	solutions, err := matching.SolveAll(ctx, pools, 0)
	if err != nil {
		log.Warn("matching failed, attesting empty block", "height", r.Height, "err", err)
		return r.attestEmpty(broadcaster, sign)
	}

	bundle, err := encoder.Encode(solutions)
	if err != nil {
		log.Warn("bundle encoding failed, attesting empty block", "height", r.Height, "err", err)
		return r.attestEmpty(broadcaster, sign)
	}

	included, err := submitter.Submit(ctx, bundle)
	if err != nil || !included {
		log.Warn("bundle did not land, attesting empty block", "height", r.Height, "err", err, "included", included)
		return r.attestEmpty(broadcaster, sign)
	}

	flat := make([]types.PoolSolution, len(solutions))
	for i, sol := range solutions {
		flat[i] = *sol
	}
	proposal := types.Proposal{
		BlockHeight:  r.Height,
		Proposer:     r.Self,
		PreProposals: r.orderedPreProposals(),
		Solutions:    flat,
	}
	digest := proposalDigest(proposal)
	sig, err := sign(digest[:])
	if err != nil {
		return err
	}
	proposal.Signature = sig

	if err := broadcaster.Broadcast(proposal); err != nil {
		return err
	}
	r.state = StateTerminal
	log.Info("proposed block", "height", r.Height, "pools", len(flat))
	return nil
}

// attestEmpty signs the next block number, broadcasts an
// AttestAngstromBlockEmpty for it, then closes the round out. The
// message has no signature field, so the signature is not sent.
func (r *Round) attestEmpty(broadcaster Broadcaster, sign Signer) error {
	att := types.AttestAngstromBlockEmpty{BlockNumber: r.Height + 1}
	digest := beUint64(att.BlockNumber)
	if _, err := sign(digest); err != nil {
		return err
	}
	if err := broadcaster.Broadcast(att); err != nil {
		return err
	}
	r.state = StateTerminal
	return nil
}

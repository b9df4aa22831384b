// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roundconsensus

import (
	"encoding/binary"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"

	"github.com/angstrom-protocol/angstrom/types"
)

func beUint64(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[:]
}

// preProposalDigest hashes the fields a PreProposal's signature covers
// (everything but the signature itself).
func preProposalDigest(pp types.PreProposal) common.Hash {
	var buf []byte
	buf = append(buf, beUint64(pp.BlockHeight)...)
	buf = append(buf, pp.Source[:]...)
	for _, o := range pp.LimitOrders {
		buf = append(buf, o.ID.Hash[:]...)
	}
	for _, o := range pp.SearcherOrders {
		buf = append(buf, o.ID.Hash[:]...)
	}
	return crypto.Keccak256Hash(buf)
}

// consistencyKey hashes an ordered pre-proposal set so two
// aggregations can be compared for "same underlying pre-proposal set"
// without a deep structural comparison.
func consistencyKey(preProposals []types.PreProposal) common.Hash {
	var buf []byte
	for _, pp := range preProposals {
		digest := preProposalDigest(pp)
		buf = append(buf, digest[:]...)
	}
	return crypto.Keccak256Hash(buf)
}

// aggregationDigest hashes the fields a PreProposalAggregation's
// signature covers.
func aggregationDigest(agg types.PreProposalAggregation) common.Hash {
	var buf []byte
	buf = append(buf, beUint64(agg.BlockHeight)...)
	buf = append(buf, agg.Source[:]...)
	key := consistencyKey(agg.PreProposals)
	buf = append(buf, key[:]...)
	return crypto.Keccak256Hash(buf)
}

// proposalDigest hashes the fields a Proposal's signature covers.
func proposalDigest(p types.Proposal) common.Hash {
	var buf []byte
	buf = append(buf, beUint64(p.BlockHeight)...)
	buf = append(buf, p.Proposer[:]...)
	key := consistencyKey(p.PreProposals)
	buf = append(buf, key[:]...)
	for _, sol := range p.Solutions {
		buf = append(buf, sol.PoolId[:]...)
		if sol.RewardT0 != nil {
			buf = append(buf, sol.RewardT0.Bytes()...)
		}
	}
	return crypto.Keccak256Hash(buf)
}

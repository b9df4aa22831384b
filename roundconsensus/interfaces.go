// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package roundconsensus

import (
	"context"

	"github.com/angstrom-protocol/angstrom/types"
)

// Signer signs a message digest with the validator's consensus key.
type Signer func(digest []byte) ([]byte, error)

// Broadcaster fans a consensus message out to peers. The concrete
// implementation lives in the peer protocol layer; roundconsensus only
// depends on this narrow interface so it can run headless in tests.
type Broadcaster interface {
	Broadcast(msg any) error
}

// BundleEncoder turns a block's pool solutions into the settlement
// bundle bytes submitted to L1. The concrete encoder is
// the RLP tuple built by the bundle package; kept as an interface here
// so this package never needs to import it.
type BundleEncoder interface {
	Encode(solutions []*types.PoolSolution) ([]byte, error)
}

// L1Submitter submits an encoded bundle to L1 and reports whether it
// was observed included within the round's wait window. Out of scope for this exercise beyond the
// interface: a real submitter talks to an L1 RPC endpoint.
type L1Submitter interface {
	Submit(ctx context.Context, bundle []byte) (included bool, err error)
}

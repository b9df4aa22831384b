// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import "github.com/angstrom-protocol/angstrom/types"

// PropagatePooledOrdersMessage is message ID 5's payload: a batch of
// orders this peer has accepted into its pool, gossiped onward.
type PropagatePooledOrdersMessage struct {
	Orders []types.StoredOrder
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "github.com/luxfi/geth/common"

// ValidatorInfo is one entry of the fixed validator set.
// Priority is scaled into fixed point by a factor of 1000.
type ValidatorInfo struct {
	Address     common.Address
	VotingPower uint64
	Priority    int64
}

// PriorityScale is the fixed-point scale applied to validator
// priorities.
const PriorityScale = 1000

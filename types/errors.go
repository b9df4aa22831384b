// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "errors"

// Order-reject errors, surfaced to the RPC caller.
var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrInvalidPool         = errors.New("invalid pool")
	ErrInvalidNonce        = errors.New("invalid nonce")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInsufficientApproval = errors.New("insufficient approval")
	ErrNotEnoughGas        = errors.New("not enough gas")
	ErrInvalidTopOfBlockSwap = errors.New("invalid top-of-block swap")
	ErrDuplicateOrder      = errors.New("duplicate order")
	ErrExpired             = errors.New("order expired")
	ErrCancelled           = errors.New("order cancelled")
)

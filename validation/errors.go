// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

// Reason enumerates why an order was rejected.
type Reason uint8

const (
	InvalidSignature Reason = iota
	InvalidPool
	InvalidNonce
	InsufficientBalance
	InsufficientApproval
	NotEnoughGas
	InvalidTopOfBlockSwap
	DuplicateOrder
)

func (r Reason) String() string {
	switch r {
	case InvalidSignature:
		return "InvalidSignature"
	case InvalidPool:
		return "InvalidPool"
	case InvalidNonce:
		return "InvalidNonce"
	case InsufficientBalance:
		return "InsufficientBalance"
	case InsufficientApproval:
		return "InsufficientApproval"
	case NotEnoughGas:
		return "NotEnoughGas"
	case InvalidTopOfBlockSwap:
		return "InvalidTopOfBlockSwap"
	case DuplicateOrder:
		return "DuplicateOrder"
	default:
		return "Unknown"
	}
}

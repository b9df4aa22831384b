// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire frames and codes the peer protocol messages validators
// exchange over the network: a one-byte message ID followed by a
// linearcodec-encoded payload.
package wire

import "errors"

// MessageID names a peer-protocol message type.
type MessageID byte

const (
	Status MessageID = iota
	PrePropose
	PreProposeAgg
	Propose
	BundleUnlockAttestation
	PropagatePooledOrders
	OrderCancellation
)

func (id MessageID) String() string {
	switch id {
	case Status:
		return "Status"
	case PrePropose:
		return "PrePropose"
	case PreProposeAgg:
		return "PreProposeAgg"
	case Propose:
		return "Propose"
	case BundleUnlockAttestation:
		return "BundleUnlockAttestation"
	case PropagatePooledOrders:
		return "PropagatePooledOrders"
	case OrderCancellation:
		return "OrderCancellation"
	default:
		return "Unknown"
	}
}

// maxMessageID is the highest MessageID this node understands; note
// the canonical mapping below is 1=PrePropose, 2=PreProposeAgg — an
// older build of this protocol is known to decode IDs 3 and 4 both as
// PrePropose, but nothing in this module reproduces that.
const maxMessageID = OrderCancellation

var (
	ErrShortMessage     = errors.New("wire: message missing its ID byte")
	ErrMessageTooLarge  = errors.New("wire: message exceeds the maximum frame size")
	ErrUnknownMessageID = errors.New("wire: unrecognized message ID")
)

// StatusMessage is the handshake message peers exchange on connect.
type StatusMessage struct {
	Version   uint32
	ChainID   uint64
	HeadBlock uint64
}

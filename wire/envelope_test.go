// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/types"
)

func TestEncodeDecodeStatusRoundTrips(t *testing.T) {
	msg := StatusMessage{Version: 1, ChainID: 1337, HeadBlock: 42}
	raw, err := Encode(Status, msg)
	require.NoError(t, err)

	id, body, err := DecodeID(raw)
	require.NoError(t, err)
	require.Equal(t, Status, id)

	var out StatusMessage
	require.NoError(t, Decode(body, &out))
	require.Equal(t, msg, out)
}

func TestEncodeDecodePreProposalWithConcreteOrderVariant(t *testing.T) {
	order := &types.ExactStandingOrder{
		RefID:       7,
		IsExactIn:   true,
		AmountValue: big.NewInt(100),
		MinPrice:    big.NewInt(5),
	}
	pp := types.PreProposal{
		BlockHeight: 10,
		Source:      common.BytesToAddress([]byte{1}),
		LimitOrders: []types.StoredOrder{{Order: order, IsBid: true}},
	}
	raw, err := Encode(PrePropose, pp)
	require.NoError(t, err)

	id, body, err := DecodeID(raw)
	require.NoError(t, err)
	require.Equal(t, PrePropose, id)

	var out types.PreProposal
	require.NoError(t, Decode(body, &out))
	require.Equal(t, pp.BlockHeight, out.BlockHeight)
	require.Len(t, out.LimitOrders, 1)
	recovered, ok := out.LimitOrders[0].Order.(*types.ExactStandingOrder)
	require.True(t, ok)
	require.Equal(t, order.RefID, recovered.RefID)
}

func TestDecodeIDRejectsShortAndOversizeMessages(t *testing.T) {
	_, _, err := DecodeID(nil)
	require.ErrorIs(t, err, ErrShortMessage)

	oversize := make([]byte, MaxMessageSize+1)
	_, _, err = DecodeID(oversize)
	require.ErrorIs(t, err, ErrMessageTooLarge)
}

func TestDecodeIDRejectsUnknownMessageID(t *testing.T) {
	_, _, err := DecodeID([]byte{byte(maxMessageID) + 1})
	require.ErrorIs(t, err, ErrUnknownMessageID)
}

func TestUnlockAttestationBlobRoundTrips(t *testing.T) {
	signer := common.BytesToAddress([]byte{0xAB})
	sig := make([]byte, 65)
	for i := range sig {
		sig[i] = byte(i)
	}

	blob, err := BuildUnlockAttestationBlob(signer, sig)
	require.NoError(t, err)
	require.Len(t, blob, 85)

	recoveredSigner, recoveredSig, err := ParseUnlockAttestationBlob(blob[:])
	require.NoError(t, err)
	require.Equal(t, signer, recoveredSigner)
	require.Equal(t, sig, recoveredSig)
}

func TestParseUnlockAttestationBlobRejectsWrongSize(t *testing.T) {
	_, _, err := ParseUnlockAttestationBlob(make([]byte, 10))
	require.ErrorIs(t, err, ErrAttestationBlobSize)
}

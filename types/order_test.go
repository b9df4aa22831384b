// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"math/big"
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"
	"github.com/stretchr/testify/require"
)

func TestIsBid(t *testing.T) {
	low := common.HexToAddress("0x0000000000000000000000000000000000000001")
	high := common.HexToAddress("0x0000000000000000000000000000000000000002")

	bid := &ExactStandingOrder{AssetIn: high, AssetOut: low, AmountValue: big.NewInt(1), MinPrice: big.NewInt(1)}
	require.True(t, IsBid(bid))

	ask := &ExactStandingOrder{AssetIn: low, AssetOut: high, AmountValue: big.NewInt(1), MinPrice: big.NewInt(1)}
	require.False(t, IsBid(ask))
}

func TestOrderHashDeterministicAndDomainBound(t *testing.T) {
	o := &ExactStandingOrder{
		RefID:       1,
		IsExactIn:   true,
		AmountValue: big.NewInt(1000),
		MaxExtraFeeAsset0Value: big.NewInt(10),
		MinPrice:    big.NewInt(5),
		AssetIn:     common.HexToAddress("0x01"),
		AssetOut:    common.HexToAddress("0x02"),
		NonceValue:  7,
		DeadlineValue: 100,
	}
	domain := DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	h1 := o.OrderHash(domain)
	h2 := o.OrderHash(domain)
	require.Equal(t, h1, h2, "hashing must be deterministic")

	otherDomain := DomainSeparator(big.NewInt(2), common.HexToAddress("0xdead"))
	h3 := o.OrderHash(otherDomain)
	require.NotEqual(t, h1, h3, "signing hash must be domain-bound")
}

func TestSignAndRecoverOrder(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	o := &TopOfBlockOrder{
		QuantityIn:  big.NewInt(100),
		QuantityOut: big.NewInt(200),
		MaxGasAsset0: big.NewInt(1),
		AssetIn:     common.HexToAddress("0x01"),
		AssetOut:    common.HexToAddress("0x02"),
		ValidForBlockValue: 42,
	}
	domain := DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	hash := o.OrderHash(domain)
	sig, err := SignHash(hash, key)
	require.NoError(t, err)
	o.OrderMeta = OrderMeta{IsEcdsa: true, From: from, Signature: sig}

	recovered, ok := VerifyOrderSignature(o, domain)
	require.True(t, ok)
	require.Equal(t, from, recovered)
}

func TestValidationPriorityOrdering(t *testing.T) {
	a := &TopOfBlockOrder{}
	b := &ExactStandingOrder{}
	require.True(t, ValidationPriority(a, b, 0, 0, common.Hash{}, common.Hash{}))
	require.False(t, ValidationPriority(b, a, 0, 0, common.Hash{}, common.Hash{}))
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"math/big"

	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/ray"
)

// PoolId identifies a pool, derived deterministically from
// (token0, token1, fee, tick spacing, hook address); token0 < token1
// by address ordering.
type PoolId = common.Hash

// OrderKind tags which of the five order shapes a value is.
type OrderKind uint8

const (
	KindExactStanding OrderKind = iota
	KindPartialStanding
	KindExactFlash
	KindPartialFlash
	KindTopOfBlock
)

func (k OrderKind) String() string {
	switch k {
	case KindExactStanding:
		return "ExactStanding"
	case KindPartialStanding:
		return "PartialStanding"
	case KindExactFlash:
		return "ExactFlash"
	case KindPartialFlash:
		return "PartialFlash"
	case KindTopOfBlock:
		return "TopOfBlock"
	default:
		return "Unknown"
	}
}

// OrderMeta carries the recovered signer and raw signature. It is
// deliberately excluded from the EIP-712 signing hash.
type OrderMeta struct {
	IsEcdsa   bool
	From      common.Address
	Signature []byte
}

// Order is the common contract every order shape implements
//.
type Order interface {
	Kind() OrderKind
	Meta() OrderMeta
	TokenIn() common.Address
	TokenOut() common.Address
	// Amount is the order's reference quantity: the exact amount for
	// Exact* orders, or max_amount_in for Partial* orders.
	Amount() *big.Int
	// MinAmount is min_amount_in; equal to Amount for exact orders.
	MinAmount() *big.Int
	LimitPrice() ray.Ray
	ExactIn() bool
	UseInternal() bool
	MaxExtraFeeAsset0() *big.Int
	Recipient() common.Address
	HookData() []byte

	// OrderHash computes the EIP-712 digest: the struct hash with
	// the trailing OrderMeta field removed.
	OrderHash(domainSeparator common.Hash) common.Hash
}

// IsBid reports whether an order is a bid: it offers T1 for T0
// (token_in > token_out).
func IsBid(o Order) bool {
	return o.TokenIn().Cmp(o.TokenOut()) > 0
}

// StandingOrder is implemented by orders valid until a deadline,
// guarded by a nonce.
type StandingOrder interface {
	Order
	Nonce() uint64
	Deadline() uint64
}

// FlashOrder is implemented by orders valid in exactly one L1 block.
type FlashOrder interface {
	Order
	ValidForBlock() uint64
}

// ExactStandingOrder is an exact-quantity order valid until Deadline,
// guarded by Nonce.
type ExactStandingOrder struct {
	RefID             uint32
	IsExactIn         bool
	AmountValue       *big.Int
	MaxExtraFeeAsset0Value *big.Int
	MinPrice          *big.Int // T1-per-T0, ×1e27
	UseInternalFlag   bool
	AssetIn           common.Address
	AssetOut          common.Address
	RecipientAddr     common.Address
	HookDataBytes     []byte
	NonceValue        uint64
	DeadlineValue     uint64
	OrderMeta         OrderMeta
}

func (o *ExactStandingOrder) Kind() OrderKind                { return KindExactStanding }
func (o *ExactStandingOrder) Meta() OrderMeta                { return o.OrderMeta }
func (o *ExactStandingOrder) TokenIn() common.Address        { return o.AssetIn }
func (o *ExactStandingOrder) TokenOut() common.Address       { return o.AssetOut }
func (o *ExactStandingOrder) Amount() *big.Int               { return o.AmountValue }
func (o *ExactStandingOrder) MinAmount() *big.Int            { return o.AmountValue }
func (o *ExactStandingOrder) LimitPrice() ray.Ray            { return ray.FromBig(o.MinPrice) }
func (o *ExactStandingOrder) ExactIn() bool                  { return o.IsExactIn }
func (o *ExactStandingOrder) UseInternal() bool              { return o.UseInternalFlag }
func (o *ExactStandingOrder) MaxExtraFeeAsset0() *big.Int    { return o.MaxExtraFeeAsset0Value }
func (o *ExactStandingOrder) Recipient() common.Address      { return o.RecipientAddr }
func (o *ExactStandingOrder) HookData() []byte               { return o.HookDataBytes }
func (o *ExactStandingOrder) Nonce() uint64                  { return o.NonceValue }
func (o *ExactStandingOrder) Deadline() uint64               { return o.DeadlineValue }

func (o *ExactStandingOrder) OrderHash(domainSeparator common.Hash) common.Hash {
	fields := [][]byte{
		pad32(big.NewInt(int64(o.RefID))),
		padBool(o.IsExactIn),
		pad32(o.AmountValue),
		pad32(o.MaxExtraFeeAsset0Value),
		pad32(o.MinPrice),
		padBool(o.UseInternalFlag),
		padAddress(o.AssetIn),
		padAddress(o.AssetOut),
		padAddress(o.RecipientAddr),
		hashDynamic(o.HookDataBytes),
		pad32(new(big.Int).SetUint64(o.NonceValue)),
		pad32(new(big.Int).SetUint64(o.DeadlineValue)),
	}
	return signingHashFor("ExactStandingOrder", fields, domainSeparator)
}

// PartialStandingOrder fills between MinAmountIn and MaxAmountIn,
// valid until Deadline, guarded by Nonce.
type PartialStandingOrder struct {
	RefID             uint32
	MinAmountIn       *big.Int
	MaxAmountIn       *big.Int
	MaxExtraFeeAsset0Value *big.Int
	MinPrice          *big.Int
	UseInternalFlag   bool
	AssetIn           common.Address
	AssetOut          common.Address
	RecipientAddr     common.Address
	HookDataBytes     []byte
	NonceValue        uint64
	DeadlineValue     uint64
	OrderMeta         OrderMeta
}

func (o *PartialStandingOrder) Kind() OrderKind             { return KindPartialStanding }
func (o *PartialStandingOrder) Meta() OrderMeta             { return o.OrderMeta }
func (o *PartialStandingOrder) TokenIn() common.Address     { return o.AssetIn }
func (o *PartialStandingOrder) TokenOut() common.Address    { return o.AssetOut }
func (o *PartialStandingOrder) Amount() *big.Int            { return o.MaxAmountIn }
func (o *PartialStandingOrder) MinAmount() *big.Int         { return o.MinAmountIn }
func (o *PartialStandingOrder) LimitPrice() ray.Ray         { return ray.FromBig(o.MinPrice) }
func (o *PartialStandingOrder) ExactIn() bool               { return true }
func (o *PartialStandingOrder) UseInternal() bool           { return o.UseInternalFlag }
func (o *PartialStandingOrder) MaxExtraFeeAsset0() *big.Int { return o.MaxExtraFeeAsset0Value }
func (o *PartialStandingOrder) Recipient() common.Address   { return o.RecipientAddr }
func (o *PartialStandingOrder) HookData() []byte            { return o.HookDataBytes }
func (o *PartialStandingOrder) Nonce() uint64                { return o.NonceValue }
func (o *PartialStandingOrder) Deadline() uint64             { return o.DeadlineValue }

func (o *PartialStandingOrder) OrderHash(domainSeparator common.Hash) common.Hash {
	fields := [][]byte{
		pad32(big.NewInt(int64(o.RefID))),
		pad32(o.MinAmountIn),
		pad32(o.MaxAmountIn),
		pad32(o.MaxExtraFeeAsset0Value),
		pad32(o.MinPrice),
		padBool(o.UseInternalFlag),
		padAddress(o.AssetIn),
		padAddress(o.AssetOut),
		padAddress(o.RecipientAddr),
		hashDynamic(o.HookDataBytes),
		pad32(new(big.Int).SetUint64(o.NonceValue)),
		pad32(new(big.Int).SetUint64(o.DeadlineValue)),
	}
	return signingHashFor("PartialStandingOrder", fields, domainSeparator)
}

// ExactFlashOrder is an exact-quantity order valid only at ValidForBlock.
type ExactFlashOrder struct {
	RefID             uint32
	IsExactIn         bool
	AmountValue       *big.Int
	MaxExtraFeeAsset0Value *big.Int
	MinPrice          *big.Int
	UseInternalFlag   bool
	AssetIn           common.Address
	AssetOut          common.Address
	RecipientAddr     common.Address
	HookDataBytes     []byte
	ValidForBlockValue uint64
	OrderMeta         OrderMeta
}

func (o *ExactFlashOrder) Kind() OrderKind             { return KindExactFlash }
func (o *ExactFlashOrder) Meta() OrderMeta             { return o.OrderMeta }
func (o *ExactFlashOrder) TokenIn() common.Address     { return o.AssetIn }
func (o *ExactFlashOrder) TokenOut() common.Address    { return o.AssetOut }
func (o *ExactFlashOrder) Amount() *big.Int            { return o.AmountValue }
func (o *ExactFlashOrder) MinAmount() *big.Int         { return o.AmountValue }
func (o *ExactFlashOrder) LimitPrice() ray.Ray         { return ray.FromBig(o.MinPrice) }
func (o *ExactFlashOrder) ExactIn() bool               { return o.IsExactIn }
func (o *ExactFlashOrder) UseInternal() bool           { return o.UseInternalFlag }
func (o *ExactFlashOrder) MaxExtraFeeAsset0() *big.Int { return o.MaxExtraFeeAsset0Value }
func (o *ExactFlashOrder) Recipient() common.Address   { return o.RecipientAddr }
func (o *ExactFlashOrder) HookData() []byte            { return o.HookDataBytes }
func (o *ExactFlashOrder) ValidForBlock() uint64       { return o.ValidForBlockValue }

func (o *ExactFlashOrder) OrderHash(domainSeparator common.Hash) common.Hash {
	fields := [][]byte{
		pad32(big.NewInt(int64(o.RefID))),
		padBool(o.IsExactIn),
		pad32(o.AmountValue),
		pad32(o.MaxExtraFeeAsset0Value),
		pad32(o.MinPrice),
		padBool(o.UseInternalFlag),
		padAddress(o.AssetIn),
		padAddress(o.AssetOut),
		padAddress(o.RecipientAddr),
		hashDynamic(o.HookDataBytes),
		pad32(new(big.Int).SetUint64(o.ValidForBlockValue)),
	}
	return signingHashFor("ExactFlashOrder", fields, domainSeparator)
}

// PartialFlashOrder fills between MinAmountIn and MaxAmountIn, valid
// only at ValidForBlock.
type PartialFlashOrder struct {
	RefID             uint32
	MinAmountIn       *big.Int
	MaxAmountIn       *big.Int
	MaxExtraFeeAsset0Value *big.Int
	MinPrice          *big.Int
	UseInternalFlag   bool
	AssetIn           common.Address
	AssetOut          common.Address
	RecipientAddr     common.Address
	HookDataBytes     []byte
	ValidForBlockValue uint64
	OrderMeta         OrderMeta
}

func (o *PartialFlashOrder) Kind() OrderKind             { return KindPartialFlash }
func (o *PartialFlashOrder) Meta() OrderMeta             { return o.OrderMeta }
func (o *PartialFlashOrder) TokenIn() common.Address     { return o.AssetIn }
func (o *PartialFlashOrder) TokenOut() common.Address    { return o.AssetOut }
func (o *PartialFlashOrder) Amount() *big.Int            { return o.MaxAmountIn }
func (o *PartialFlashOrder) MinAmount() *big.Int         { return o.MinAmountIn }
func (o *PartialFlashOrder) LimitPrice() ray.Ray         { return ray.FromBig(o.MinPrice) }
func (o *PartialFlashOrder) ExactIn() bool               { return true }
func (o *PartialFlashOrder) UseInternal() bool           { return o.UseInternalFlag }
func (o *PartialFlashOrder) MaxExtraFeeAsset0() *big.Int { return o.MaxExtraFeeAsset0Value }
func (o *PartialFlashOrder) Recipient() common.Address   { return o.RecipientAddr }
func (o *PartialFlashOrder) HookData() []byte            { return o.HookDataBytes }
func (o *PartialFlashOrder) ValidForBlock() uint64       { return o.ValidForBlockValue }

func (o *PartialFlashOrder) OrderHash(domainSeparator common.Hash) common.Hash {
	fields := [][]byte{
		pad32(big.NewInt(int64(o.RefID))),
		pad32(o.MinAmountIn),
		pad32(o.MaxAmountIn),
		pad32(o.MaxExtraFeeAsset0Value),
		pad32(o.MinPrice),
		padBool(o.UseInternalFlag),
		padAddress(o.AssetIn),
		padAddress(o.AssetOut),
		padAddress(o.RecipientAddr),
		hashDynamic(o.HookDataBytes),
		pad32(new(big.Int).SetUint64(o.ValidForBlockValue)),
	}
	return signingHashFor("PartialFlashOrder", fields, domainSeparator)
}

// TopOfBlockOrder is the single searcher swap per pool, always
// exact-in and single-block.
type TopOfBlockOrder struct {
	QuantityIn     *big.Int
	QuantityOut    *big.Int
	MaxGasAsset0   *big.Int
	UseInternalFlag bool
	AssetIn        common.Address
	AssetOut       common.Address
	RecipientAddr  common.Address
	ValidForBlockValue uint64
	OrderMeta      OrderMeta
}

func (o *TopOfBlockOrder) Kind() OrderKind             { return KindTopOfBlock }
func (o *TopOfBlockOrder) Meta() OrderMeta             { return o.OrderMeta }
func (o *TopOfBlockOrder) TokenIn() common.Address     { return o.AssetIn }
func (o *TopOfBlockOrder) TokenOut() common.Address    { return o.AssetOut }
func (o *TopOfBlockOrder) Amount() *big.Int            { return o.QuantityIn }
func (o *TopOfBlockOrder) MinAmount() *big.Int         { return o.QuantityIn }
func (o *TopOfBlockOrder) LimitPrice() ray.Ray {
	return ray.FromRat(o.QuantityOut, orOne(o.QuantityIn))
}
func (o *TopOfBlockOrder) ExactIn() bool               { return true }
func (o *TopOfBlockOrder) UseInternal() bool           { return o.UseInternalFlag }
func (o *TopOfBlockOrder) MaxExtraFeeAsset0() *big.Int { return o.MaxGasAsset0 }
func (o *TopOfBlockOrder) Recipient() common.Address   { return o.RecipientAddr }
func (o *TopOfBlockOrder) HookData() []byte            { return nil }
func (o *TopOfBlockOrder) ValidForBlock() uint64       { return o.ValidForBlockValue }

func (o *TopOfBlockOrder) OrderHash(domainSeparator common.Hash) common.Hash {
	fields := [][]byte{
		pad32(o.QuantityIn),
		pad32(o.QuantityOut),
		pad32(o.MaxGasAsset0),
		padBool(o.UseInternalFlag),
		padAddress(o.AssetIn),
		padAddress(o.AssetOut),
		padAddress(o.RecipientAddr),
		pad32(new(big.Int).SetUint64(o.ValidForBlockValue)),
	}
	return signingHashFor("TopOfBlockOrder", fields, domainSeparator)
}

func orOne(v *big.Int) *big.Int {
	if v == nil || v.Sign() == 0 {
		return big.NewInt(1)
	}
	return v
}

// signingHashFor computes keccak256(typeHash ++ fields...) as the
// struct hash, then folds it under the EIP-712 domain. The type name
// stands in for the full Solidity type string; what matters is that
// the digest omits the trailing OrderMeta field and stays domain-bound,
// which this satisfies deterministically.
func signingHashFor(typeName string, fields [][]byte, domainSeparator common.Hash) common.Hash {
	var buf []byte
	buf = append(buf, typeHash(typeName)...)
	for _, f := range fields {
		buf = append(buf, f...)
	}
	structHash := common.BytesToHash(keccak(buf))
	return SigningHash(domainSeparator, structHash)
}

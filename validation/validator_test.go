// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

import (
	"context"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"
	"github.com/stretchr/testify/require"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/types"
)

type fakeState struct {
	balances   map[common.Address]map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]*big.Int
	pools      map[types.PoolId]types.PoolKey
	nextBlock  uint64
}

func newFakeState() *fakeState {
	return &fakeState{
		balances:   make(map[common.Address]map[common.Address]*big.Int),
		allowances: make(map[common.Address]map[common.Address]*big.Int),
		pools:      make(map[types.PoolId]types.PoolKey),
	}
}

func (s *fakeState) setBalance(owner, token common.Address, v int64) {
	m := s.balances[owner]
	if m == nil {
		m = make(map[common.Address]*big.Int)
		s.balances[owner] = m
	}
	m[token] = big.NewInt(v)
}

func (s *fakeState) setAllowance(owner, token common.Address, v int64) {
	m := s.allowances[owner]
	if m == nil {
		m = make(map[common.Address]*big.Int)
		s.allowances[owner] = m
	}
	m[token] = big.NewInt(v)
}

func (s *fakeState) BalanceOf(owner, token common.Address) (*big.Int, error) {
	if m := s.balances[owner]; m != nil {
		if v, ok := m[token]; ok {
			return v, nil
		}
	}
	return big.NewInt(0), nil
}

func (s *fakeState) AllowanceOf(owner, token common.Address) (*big.Int, error) {
	if m := s.allowances[owner]; m != nil {
		if v, ok := m[token]; ok {
			return v, nil
		}
	}
	return big.NewInt(0), nil
}

func (s *fakeState) PoolByID(id types.PoolId) (types.PoolKey, bool) {
	pk, ok := s.pools[id]
	return pk, ok
}

func (s *fakeState) NextBlock() uint64 { return s.nextBlock }

type fixedGas struct {
	cost *big.Int
	err  error
}

func (g fixedGas) GasCostT0(o types.Order, tokenIn common.Address) (*big.Int, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.cost, nil
}

type fakeSnapshots struct {
	snap *amm.Snapshot
}

func (f fakeSnapshots) Get(poolID types.PoolId) (*amm.Snapshot, func(), error) {
	return f.snap, func() {}, nil
}

func flatTestSnapshot(poolID types.PoolId) *amm.Snapshot {
	q96 := new(big.Int).Lsh(big.NewInt(1), 96)
	return &amm.Snapshot{
		PoolID:        poolID,
		Fee:           3000,
		TickSpacing:   60,
		SqrtPriceX96:  uint256.MustFromBig(q96),
		Tick:          0,
		Liquidity:     big.NewInt(1_000_000_000_000),
		Ticks:         make(map[int32]types.TickInfo),
		MinLoadedTick: -600,
		MaxLoadedTick: 600,
	}
}

func mkValidator(t *testing.T, state *fakeState, gas GasOracle, snaps SnapshotProvider) *Validator {
	t.Helper()
	domain := types.DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	return New(domain, state, gas, snaps, 4)
}

func signedExactStanding(t *testing.T, tokenIn, tokenOut common.Address, amount int64, maxFee int64, nonce, deadline uint64) (*types.ExactStandingOrder, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	o := &types.ExactStandingOrder{
		IsExactIn:              true,
		AmountValue:            big.NewInt(amount),
		MaxExtraFeeAsset0Value: big.NewInt(maxFee),
		MinPrice:               big.NewInt(1),
		AssetIn:                tokenIn,
		AssetOut:               tokenOut,
		NonceValue:             nonce,
		DeadlineValue:          deadline,
	}
	domain := types.DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	hash := o.OrderHash(domain)
	sig, err := types.SignHash(hash, key)
	require.NoError(t, err)
	o.OrderMeta = types.OrderMeta{IsEcdsa: true, From: from, Signature: sig}
	return o, from
}

func TestValidateAcceptsWellFormedOrder(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey
	state.nextBlock = 100

	o, from := signedExactStanding(t, tokenIn, tokenOut, 1000, 10, 1, 200)
	state.setBalance(from, tokenIn, 1000)
	state.setAllowance(from, tokenIn, 1000)

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})

	out := v.Validate(context.Background(), o)
	require.Equal(t, OutcomeValid, out.Kind)
	require.NotNil(t, out.Stored)
	require.True(t, out.Stored.IsValid)
	require.True(t, out.Stored.IsBid)
}

func TestValidateRejectsBadSignature(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey

	o, from := signedExactStanding(t, tokenIn, tokenOut, 1000, 10, 1, 200)
	o.OrderMeta.Signature[0] ^= 0xff
	state.setBalance(from, tokenIn, 1000)
	state.setAllowance(from, tokenIn, 1000)

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})

	out := v.Validate(context.Background(), o)
	require.Equal(t, OutcomeInvalid, out.Kind)
	require.Equal(t, InvalidSignature, out.Reason)
}

func TestValidateRejectsUnknownPool(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")

	state := newFakeState()
	o, from := signedExactStanding(t, tokenIn, tokenOut, 1000, 10, 1, 200)
	state.setBalance(from, tokenIn, 1000)
	state.setAllowance(from, tokenIn, 1000)

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})

	out := v.Validate(context.Background(), o)
	require.Equal(t, OutcomeInvalid, out.Kind)
	require.Equal(t, InvalidPool, out.Reason)
}

func TestValidateRejectsReusedNonce(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey
	state.nextBlock = 100

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	state.setBalance(from, tokenIn, 1_000_000)
	state.setAllowance(from, tokenIn, 1_000_000)

	domain := types.DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	mkOrder := func(nonce uint64) *types.ExactStandingOrder {
		o := &types.ExactStandingOrder{
			IsExactIn:              true,
			AmountValue:            big.NewInt(10),
			MaxExtraFeeAsset0Value: big.NewInt(10),
			MinPrice:               big.NewInt(1),
			AssetIn:                tokenIn,
			AssetOut:               tokenOut,
			NonceValue:             nonce,
			DeadlineValue:          200,
		}
		hash := o.OrderHash(domain)
		sig, err := types.SignHash(hash, key)
		require.NoError(t, err)
		o.OrderMeta = types.OrderMeta{IsEcdsa: true, From: from, Signature: sig}
		return o
	}

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})

	first := v.Validate(context.Background(), mkOrder(7))
	require.Equal(t, OutcomeValid, first.Kind)

	second := v.Validate(context.Background(), mkOrder(7))
	require.Equal(t, OutcomeInvalid, second.Kind)
	require.Equal(t, InvalidNonce, second.Reason)
}

func TestValidateParksOverdrawnOrderInsteadOfRejecting(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey
	state.nextBlock = 100

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	state.setBalance(from, tokenIn, 100)
	state.setAllowance(from, tokenIn, 100)

	domain := types.DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	mkOrder := func(nonce uint64, amount int64) *types.ExactStandingOrder {
		o := &types.ExactStandingOrder{
			IsExactIn:              true,
			AmountValue:            big.NewInt(amount),
			MaxExtraFeeAsset0Value: big.NewInt(10),
			MinPrice:               big.NewInt(1),
			AssetIn:                tokenIn,
			AssetOut:               tokenOut,
			NonceValue:             nonce,
			DeadlineValue:          200,
		}
		hash := o.OrderHash(domain)
		sig, err := types.SignHash(hash, key)
		require.NoError(t, err)
		o.OrderMeta = types.OrderMeta{IsEcdsa: true, From: from, Signature: sig}
		return o
	}

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})

	first := v.Validate(context.Background(), mkOrder(1, 80))
	require.Equal(t, OutcomeValid, first.Kind)
	require.True(t, first.Stored.IsValid)

	second := v.Validate(context.Background(), mkOrder(2, 80))
	require.Equal(t, OutcomeValid, second.Kind, "overdrawn order is parked, not rejected")
	require.False(t, second.Stored.IsValid)
}

func TestValidateHigherPriorityOrderPreemptsEarlierPartialClaim(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey
	state.nextBlock = 100

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	state.setBalance(from, tokenIn, 100)
	state.setAllowance(from, tokenIn, 100)

	domain := types.DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	mkPartial := func(nonce uint64, amount int64) *types.PartialStandingOrder {
		o := &types.PartialStandingOrder{
			MinAmountIn:            big.NewInt(1),
			MaxAmountIn:            big.NewInt(amount),
			MaxExtraFeeAsset0Value: big.NewInt(10),
			MinPrice:               big.NewInt(1),
			AssetIn:                tokenIn,
			AssetOut:               tokenOut,
			NonceValue:             nonce,
			DeadlineValue:          200,
		}
		hash := o.OrderHash(domain)
		sig, err := types.SignHash(hash, key)
		require.NoError(t, err)
		o.OrderMeta = types.OrderMeta{IsEcdsa: true, From: from, Signature: sig}
		return o
	}
	mkExact := func(nonce uint64, amount int64) *types.ExactStandingOrder {
		o := &types.ExactStandingOrder{
			IsExactIn:              true,
			AmountValue:            big.NewInt(amount),
			MaxExtraFeeAsset0Value: big.NewInt(10),
			MinPrice:               big.NewInt(1),
			AssetIn:                tokenIn,
			AssetOut:               tokenOut,
			NonceValue:             nonce,
			DeadlineValue:          200,
		}
		hash := o.OrderHash(domain)
		sig, err := types.SignHash(hash, key)
		require.NoError(t, err)
		o.OrderMeta = types.OrderMeta{IsEcdsa: true, From: from, Signature: sig}
		return o
	}

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})

	// A partial order arrives first and claims the whole balance.
	first := v.Validate(context.Background(), mkPartial(1, 100))
	require.Equal(t, OutcomeValid, first.Kind)
	require.True(t, first.Stored.IsValid)

	// An exact order from the same signer arrives second, for an
	// amount the balance can no longer cover on top of the partial
	// order's claim. Arrival order alone would park it; validation
	// priority ranks exact above partial, so it preempts the earlier
	// claim instead.
	second := v.Validate(context.Background(), mkExact(2, 100))
	require.Equal(t, OutcomeValid, second.Kind)
	require.True(t, second.Stored.IsValid, "higher-priority order preempts the earlier partial order's balance claim")
}

func TestValidateRejectsInsufficientGasCap(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey
	state.nextBlock = 100

	o, from := signedExactStanding(t, tokenIn, tokenOut, 1000, 1, 1, 200)
	state.setBalance(from, tokenIn, 1000)
	state.setAllowance(from, tokenIn, 1000)

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(50)}, fakeSnapshots{})

	out := v.Validate(context.Background(), o)
	require.Equal(t, OutcomeInvalid, out.Kind)
	require.Equal(t, NotEnoughGas, out.Reason)
}

func TestValidateTopOfBlockFeasibility(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey
	state.nextBlock = 100

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	state.setBalance(from, tokenIn, 1_000_000)
	state.setAllowance(from, tokenIn, 1_000_000)

	domain := types.DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	o := &types.TopOfBlockOrder{
		QuantityIn:         big.NewInt(1000),
		QuantityOut:        big.NewInt(1_000_000_000_000), // unreachable at parity price
		MaxGasAsset0:       big.NewInt(1_000_000),
		AssetIn:            tokenIn,
		AssetOut:           tokenOut,
		ValidForBlockValue: 100,
	}
	hash := o.OrderHash(domain)
	sig, err := types.SignHash(hash, key)
	require.NoError(t, err)
	o.OrderMeta = types.OrderMeta{IsEcdsa: true, From: from, Signature: sig}

	snap := flatTestSnapshot(poolKey.ID())
	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{snap: snap})

	out := v.Validate(context.Background(), o)
	require.Equal(t, OutcomeInvalid, out.Kind)
	require.Equal(t, InvalidTopOfBlockSwap, out.Reason)
}

func TestValidateAcceptsOrdersAfterTransition(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey

	o, from := signedExactStanding(t, tokenIn, tokenOut, 1000, 10, 1, 200)
	state.setBalance(from, tokenIn, 1000)
	state.setAllowance(from, tokenIn, 1000)

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})
	v.Transition(nil, nil)

	out := v.Validate(context.Background(), o)
	require.Equal(t, OutcomeValid, out.Kind, "Transition resets to RegularProcessing before returning")
	require.Equal(t, from, out.Stored.Order.Meta().From)
}

func TestCancelMarksKnownHashDuplicate(t *testing.T) {
	tokenIn := common.HexToAddress("0x02")
	tokenOut := common.HexToAddress("0x01")
	poolKey := types.PoolKey{Token0: tokenOut, Token1: tokenIn, Fee: 3000, TickSpacing: 60}

	state := newFakeState()
	state.pools[poolKey.ID()] = poolKey
	state.nextBlock = 100

	o, from := signedExactStanding(t, tokenIn, tokenOut, 1000, 10, 1, 200)
	state.setBalance(from, tokenIn, 1000)
	state.setAllowance(from, tokenIn, 1000)

	v := mkValidator(t, state, fixedGas{cost: big.NewInt(5)}, fakeSnapshots{})

	domain := types.DomainSeparator(big.NewInt(1), common.HexToAddress("0xdead"))
	hash := o.OrderHash(domain)
	v.Cancel(types.CancelOrderRequest{UserAddress: from, OrderHash: hash}, 200)

	out := v.Validate(context.Background(), o)
	require.Equal(t, OutcomeInvalid, out.Kind)
	require.Equal(t, DuplicateOrder, out.Reason)
}

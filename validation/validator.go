// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validation implements the order validator: a four-state
// machine that admits orders against the current block's state,
// computes their gas cost in T0, and tracks running per-signer
// balance usage so a signer cannot over-commit funds across several
// pending orders.
package validation

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/log"

	"github.com/angstrom-protocol/angstrom/internal/keyedpool"
	"github.com/angstrom-protocol/angstrom/types"
)

// State is the validator's per-process lifecycle state
//.
type State uint8

const (
	RegularProcessing State = iota
	ClearingForNewBlock
	WaitingForStorageCleanup
	InformState
)

// OutcomeKind tags which arm of Outcome is populated.
type OutcomeKind uint8

const (
	OutcomeValid OutcomeKind = iota
	OutcomeInvalid
	OutcomeTransitioned
)

// Outcome is the result of Validate.
type Outcome struct {
	Kind   OutcomeKind
	Stored *types.StoredOrder
	Hash   common.Hash
	Reason Reason
}

// Validator is the process-wide order validator.
type Validator struct {
	state      State
	stateMu    sync.RWMutex
	domainSep  common.Hash
	stateDB    StateProvider
	gas        GasOracle
	snapshots  SnapshotProvider
	pool       *keyedpool.Pool

	mu            sync.Mutex
	usedNonces    map[common.Address]map[uint64]bool
	pendingUsage  map[common.Address]map[common.Address]*pendingAccount
	knownCancels  map[common.Hash]cancelRecord
}

type pendingAccount struct {
	// orders holds every admitted order for (signer, tokenIn), ordered
	// by validation_priority, to support re-derivation of the running
	// balance used by check (4).
	orders []*types.StoredOrder
}

// committedAheadOf sums Amount() across every recorded order that
// outranks (order, reuse, hash) under validation_priority: a
// higher-priority order is checked against what a lower-priority one
// actually leaves it, not against everything that happened to arrive
// first, so a late top-of-block or exact order can still preempt an
// earlier partial order's claim on the same balance.
func (a *pendingAccount) committedAheadOf(order types.Order, reuse uint64, hash common.Hash) *big.Int {
	total := new(big.Int)
	for _, o := range a.orders {
		if types.ValidationPriority(order, o.Order, reuse, o.ID.ReuseAvoidance, hash, o.ID.Hash) {
			continue
		}
		total.Add(total, o.Order.Amount())
	}
	return total
}

// insertByPriority inserts stored into orders at the position that
// keeps the slice ordered by validation_priority, highest first.
func (a *pendingAccount) insertByPriority(stored *types.StoredOrder) {
	i := 0
	for ; i < len(a.orders); i++ {
		if types.ValidationPriority(stored.Order, a.orders[i].Order, stored.ID.ReuseAvoidance, a.orders[i].ID.ReuseAvoidance, stored.ID.Hash, a.orders[i].ID.Hash) {
			break
		}
	}
	a.orders = append(a.orders, nil)
	copy(a.orders[i+1:], a.orders[i:])
	a.orders[i] = stored
}

// cancelRecord is kept either for a known order (to drop it) or for
// an order that has not yet arrived (to reject it on arrival).
type cancelRecord struct {
	orderHash common.Hash
	deadline  uint64
}

// New builds a Validator in RegularProcessing state.
func New(domainSeparator common.Hash, stateDB StateProvider, gas GasOracle, snapshots SnapshotProvider, workers int) *Validator {
	return &Validator{
		state:        RegularProcessing,
		domainSep:    domainSeparator,
		stateDB:      stateDB,
		gas:          gas,
		snapshots:    snapshots,
		pool:         keyedpool.New(workers),
		usedNonces:   make(map[common.Address]map[uint64]bool),
		pendingUsage: make(map[common.Address]map[common.Address]*pendingAccount),
		knownCancels: make(map[common.Hash]cancelRecord),
	}
}

// Validate runs the ordered admission checks against order, serialized
// against every other order from the same signer via the keyed worker
// pool.
func (v *Validator) Validate(ctx context.Context, order types.Order) Outcome {
	v.stateMu.RLock()
	state := v.state
	v.stateMu.RUnlock()
	if state != RegularProcessing {
		return Outcome{Kind: OutcomeTransitioned}
	}

	var out Outcome
	signer := order.Meta().From
	v.pool.Submit(ctx, signer.Hex(), func() {
		out = v.validateLocked(order)
	})
	return out
}

func (v *Validator) validateLocked(order types.Order) Outcome {
	hash := order.OrderHash(v.domainSep)

	// (1) signature recovers to claimed from.
	recovered, ok := types.VerifyOrderSignature(order, v.domainSep)
	if !ok || recovered != order.Meta().From {
		return invalid(hash, InvalidSignature)
	}

	v.mu.Lock()
	if rec, known := v.knownCancels[hash]; known && rec.orderHash == hash {
		v.mu.Unlock()
		return invalid(hash, DuplicateOrder)
	}
	v.mu.Unlock()

	// (2) pool exists and tokens match.
	poolKey, exists := v.lookupPool(order)
	if !exists {
		return invalid(hash, InvalidPool)
	}

	// (3) anti-replay.
	if err := v.checkReplay(order); err != nil {
		return invalid(hash, InvalidNonce)
	}

	// (4) running balance/approval, ordered by validation_priority.
	sufficient, parked := v.checkBalanceAndApproval(order, hash)
	if !sufficient {
		return invalid(hash, InsufficientBalance)
	}

	// (5) top-of-block swap feasibility.
	if tob, isTob := order.(*types.TopOfBlockOrder); isTob {
		if err := v.checkTopOfBlockFeasible(tob, poolKey.ID()); err != nil {
			return invalid(hash, InvalidTopOfBlockSwap)
		}
	}

	// (6) gas in T0, deducted from the caller's explicit cap.
	gasCost, err := v.gas.GasCostT0(order, order.TokenIn())
	if err != nil {
		return invalid(hash, NotEnoughGas)
	}
	if order.MaxExtraFeeAsset0() == nil || order.MaxExtraFeeAsset0().Cmp(gasCost) < 0 {
		return invalid(hash, NotEnoughGas)
	}

	stored := &types.StoredOrder{
		Order:   order,
		IsBid:   types.IsBid(order),
		IsValid: true,
		PoolId:  poolKey.ID(),
		ID: types.OrderId{
			Hash:           hash,
			PoolId:         poolKey.ID(),
			Address:        order.Meta().From,
			ReuseAvoidance: reuseAvoidance(order),
		},
	}
	stored.Priority.Gas = gasCost
	if parked {
		stored.IsValid = false
	}

	v.recordAdmission(order, stored)
	return Outcome{Kind: OutcomeValid, Stored: stored}
}

func invalid(hash common.Hash, reason Reason) Outcome {
	return Outcome{Kind: OutcomeInvalid, Hash: hash, Reason: reason}
}

func (v *Validator) lookupPool(order types.Order) (types.PoolKey, bool) {
	for _, key := range v.candidatePoolIDs(order) {
		if pk, ok := v.stateDB.PoolByID(key); ok {
			return pk, true
		}
	}
	return types.PoolKey{}, false
}

// candidatePoolIDs derives both token orderings since an order's
// TokenIn/TokenOut pair may not already be sorted the way PoolId
// derivation expects.
func (v *Validator) candidatePoolIDs(order types.Order) []types.PoolId {
	a, b := order.TokenIn(), order.TokenOut()
	k1 := types.PoolKey{Token0: a, Token1: b}
	k2 := types.PoolKey{Token0: b, Token1: a}
	return []types.PoolId{k1.ID(), k2.ID()}
}

func (v *Validator) checkReplay(order types.Order) error {
	signer := order.Meta().From
	nextBlock := v.stateDB.NextBlock()

	if standing, ok := order.(types.StandingOrder); ok {
		v.mu.Lock()
		defer v.mu.Unlock()
		used := v.usedNonces[signer]
		if used == nil {
			used = make(map[uint64]bool)
			v.usedNonces[signer] = used
		}
		if used[standing.Nonce()] {
			return fmt.Errorf("nonce %d already used", standing.Nonce())
		}
		if standing.Deadline() <= nextBlock+1 {
			return fmt.Errorf("deadline %d too close to block %d", standing.Deadline(), nextBlock)
		}
		used[standing.Nonce()] = true
		return nil
	}
	if flash, ok := order.(types.FlashOrder); ok {
		if flash.ValidForBlock() != nextBlock {
			return fmt.Errorf("valid_for_block %d != next block %d", flash.ValidForBlock(), nextBlock)
		}
		return nil
	}
	return nil
}

// checkBalanceAndApproval sums the committed amount for (signer,
// token_in) over already-admitted orders that outrank this one under
// validation_priority (top-of-block > exact > partial > lower-nonce >
// lexicographically smaller hash) plus this order itself, and reports
// whether that total still fits inside the on-chain balance/approval
// cap. An order that would overdraw is parked rather than rejected
// outright; a higher-priority order preempts a lower-priority one's
// claim on the same balance regardless of arrival order.
func (v *Validator) checkBalanceAndApproval(order types.Order, hash common.Hash) (sufficient bool, parked bool) {
	signer := order.Meta().From
	token := order.TokenIn()
	reuse := reuseAvoidance(order)

	balance, err := v.stateDB.BalanceOf(signer, token)
	if err != nil {
		return false, false
	}
	approval, err := v.stateDB.AllowanceOf(signer, token)
	if err != nil {
		return false, false
	}
	capAmt := balance
	if approval.Cmp(capAmt) < 0 {
		capAmt = approval
	}
	if capAmt.Sign() < 0 {
		return false, false
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	already := new(big.Int)
	if byToken := v.pendingUsage[signer]; byToken != nil {
		if acct := byToken[token]; acct != nil {
			already = acct.committedAheadOf(order, reuse, hash)
		}
	}
	projected := new(big.Int).Add(already, order.Amount())
	if projected.Cmp(capAmt) <= 0 {
		return true, false
	}
	// Would overdraw the signer's balance if fully committed: park it
	// rather than reject, since an earlier order may still expire or
	// be cancelled before this one is due.
	return true, true
}

// reuseAvoidance extracts the value validation_priority's nonce
// tie-break compares against: a standing order's nonce, or a flash or
// top-of-block order's valid_for_block (top-of-block's kind alone
// always outranks the other two before this tie-break is consulted).
func reuseAvoidance(order types.Order) uint64 {
	if standing, ok := order.(types.StandingOrder); ok {
		return standing.Nonce()
	}
	if flash, ok := order.(types.FlashOrder); ok {
		return flash.ValidForBlock()
	}
	return 0
}

// checkTopOfBlockFeasible simulates the searcher's declared swap on
// the current snapshot and verifies the declared quantity_out is
// achievable with the declared quantity_in).
func (v *Validator) checkTopOfBlockFeasible(tob *types.TopOfBlockOrder, poolID types.PoolId) error {
	snap, unlock, err := v.snapshots.Get(poolID)
	if err != nil {
		return err
	}
	defer unlock()

	dir := types.ZeroForOne
	if types.IsBid(tob) {
		dir = types.OneForZero
	}
	result, err := snap.Clone().SwapToAmount(tob.QuantityIn, dir)
	if err != nil {
		return err
	}

	achievedOut := new(big.Int).Abs(result.TotalT1)
	if dir == types.ZeroForOne {
		achievedOut = new(big.Int).Abs(result.TotalT1)
	} else {
		achievedOut = new(big.Int).Abs(result.TotalT0)
	}
	if achievedOut.Cmp(tob.QuantityOut) < 0 {
		return fmt.Errorf("declared quantity_out %s not achievable, got %s", tob.QuantityOut, achievedOut)
	}
	return nil
}

func (v *Validator) recordAdmission(order types.Order, stored *types.StoredOrder) {
	signer := order.Meta().From
	token := order.TokenIn()

	v.mu.Lock()
	defer v.mu.Unlock()
	byToken := v.pendingUsage[signer]
	if byToken == nil {
		byToken = make(map[common.Address]*pendingAccount)
		v.pendingUsage[signer] = byToken
	}
	acct := byToken[token]
	if acct == nil {
		acct = &pendingAccount{}
		byToken[token] = acct
	}
	acct.insertByPriority(stored)
}

// Transition moves the validator through ClearingForNewBlock →
// WaitingForStorageCleanup → InformState → RegularProcessing on a new
// block. changedAddresses and filledHashes come from the order pool's
// new_block handling.
func (v *Validator) Transition(changedAddresses []common.Address, filledHashes []common.Hash) {
	v.stateMu.Lock()
	v.state = ClearingForNewBlock
	v.stateMu.Unlock()

	v.stateMu.Lock()
	v.state = WaitingForStorageCleanup
	v.stateMu.Unlock()

	v.mu.Lock()
	for _, addr := range changedAddresses {
		delete(v.pendingUsage, addr)
	}
	for _, h := range filledHashes {
		delete(v.knownCancels, h)
	}
	v.mu.Unlock()

	v.stateMu.Lock()
	v.state = InformState
	v.state = RegularProcessing
	v.stateMu.Unlock()

	log.Info("validator transitioned to new block", "changedAddresses", len(changedAddresses), "filledHashes", len(filledHashes))
}

// Cancel records a signed cancellation so a later-arriving order with
// this hash is rejected on sight. An order that was already admitted
// is not removed by this call.
func (v *Validator) Cancel(req types.CancelOrderRequest, deadline uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.knownCancels[req.OrderHash] = cancelRecord{orderHash: req.OrderHash, deadline: deadline}
}

// ValidNonce reports whether nonce is still unused for signer, letting
// a client preflight a standing order before signing it.
func (v *Validator) ValidNonce(signer common.Address, nonce uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.usedNonces[signer][nonce]
}

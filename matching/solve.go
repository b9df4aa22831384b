// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package matching

import (
	"math/big"
	"sort"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/ray"
	"github.com/angstrom-protocol/angstrom/types"
)

// Solve runs the binary-search-over-UCP algorithm for one pool and
// returns its PoolSolution. snap is read through
// snap.Clone for every probe; the caller's snapshot is never mutated.
func Solve(poolID types.PoolId, limit []BookOrder, searcher *types.StoredOrder, snap *amm.Snapshot) (*types.PoolSolution, error) {
	candidates, err := collectCandidates(limit, searcher, snap)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &types.PoolSolution{PoolId: poolID, UCP: snap.CurrentPrice(), RewardT0: big.NewInt(0), Fee: snap.Fee}, nil
	}

	lo, hi := 0, len(candidates)-1
	best := hi
	for lo <= hi {
		mid := (lo + hi) / 2
		imbalance, err := netImbalance(candidates[mid], limit, searcher, snap)
		if err != nil {
			return nil, err
		}
		if imbalance.Sign() >= 0 {
			best = mid
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	return settle(poolID, candidates[best], limit, searcher, snap)
}

func collectCandidates(limit []BookOrder, searcher *types.StoredOrder, snap *amm.Snapshot) ([]ray.Ray, error) {
	if searcher != nil {
		if _, ok := searcher.Order.(*types.TopOfBlockOrder); !ok {
			return nil, errNotTopOfBlock
		}
	}

	seen := make(map[string]bool)
	var out []ray.Ray
	add := func(r ray.Ray) {
		key := r.Big().String()
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, r)
	}

	for _, b := range limit {
		add(b.ClearingPrice)
	}
	add(snap.CurrentPrice())
	if searcher != nil {
		add(NewBookOrder(searcher).ClearingPrice)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out, nil
}

// netImbalance is supply minus demand minus the AMM's signed T0 leg,
// evaluated with every order (including partials) treated as either
// fully eligible or not. It is monotonically non-decreasing in ucp,
// which is what makes the binary search valid.
func netImbalance(ucp ray.Ray, limit []BookOrder, searcher *types.StoredOrder, snap *amm.Snapshot) (*big.Int, error) {
	supply := new(big.Int)
	demand := new(big.Int)

	for _, b := range limit {
		if !b.eligible(ucp) {
			continue
		}
		t0 := b.t0Amount(b.Stored.Order.Amount(), ucp)
		if b.Stored.IsBid {
			demand.Add(demand, t0)
		} else {
			supply.Add(supply, t0)
		}
	}
	if searcher != nil {
		s := NewBookOrder(searcher)
		if s.eligible(ucp) {
			t0 := s.t0Amount(s.Stored.Order.Amount(), ucp)
			if s.Stored.IsBid {
				demand.Add(demand, t0)
			} else {
				supply.Add(supply, t0)
			}
		}
	}

	ammLeg, err := simulateAmmLeg(snap, ucp)
	if err != nil {
		return nil, err
	}

	imbalance := new(big.Int).Sub(supply, demand)
	imbalance.Add(imbalance, ammLeg.T0Signed())
	return imbalance, nil
}

// simulateAmmLeg probes, on a throwaway clone, the swap that would
// move the pool from its current price to ucp: selling T0 if the
// price falls, buying T0 if it rises.
func simulateAmmLeg(snap *amm.Snapshot, ucp ray.Ray) (*types.NetAmmOrder, error) {
	cur := snap.CurrentPrice()
	if cur.Cmp(ucp) == 0 {
		return &types.NetAmmOrder{Direction: types.AmmSell, T0: new(big.Int), T1: new(big.Int)}, nil
	}

	dir := amm.ZeroForOne
	ammDir := types.AmmSell
	if ucp.Cmp(cur) > 0 {
		dir = amm.OneForZero
		ammDir = types.AmmBuy
	}

	clone := snap.Clone()
	limit := sqrtPriceX96ForRay(ucp)
	result, err := clone.SwapToPrice(dir, limit)
	if err != nil {
		return nil, err
	}
	return &types.NetAmmOrder{
		Direction: ammDir,
		T0:        new(big.Int).Abs(result.TotalT0),
		T1:        new(big.Int).Abs(result.TotalT1),
	}, nil
}

func isFlash(o *types.StoredOrder) bool {
	switch o.Order.Kind() {
	case types.KindExactFlash, types.KindPartialFlash:
		return true
	default:
		return false
	}
}

// notEligibleState reports the outcome an order gets when it never
// crosses the winning UCP: flash orders expire with the block, standing
// orders simply carry over to be reconsidered next block.
func notEligibleState(o *types.StoredOrder) types.FillState {
	if isFlash(o) {
		return types.FillKilled
	}
	return types.FillUnfilled
}

// settle fills every order eligible at ucp. Orders priced exactly at
// the margin (whether partial or exact) are deferred to
// allocateMarginal, which fills them to the extent the book has room;
// marginal asks go first and may trade against the marginal bids'
// volume. Whatever is left over is absorbed into the AMM leg as
// reward_t0.
func settle(poolID types.PoolId, ucp ray.Ray, limit []BookOrder, searcher *types.StoredOrder, snap *amm.Snapshot) (*types.PoolSolution, error) {
	outcomes := make([]types.OrderOutcome, 0, len(limit))
	var marginal []BookOrder

	supply := new(big.Int)
	demand := new(big.Int)

	for _, b := range limit {
		if !b.eligible(ucp) {
			outcomes = append(outcomes, types.OrderOutcome{OrderID: b.Stored.ID, State: notEligibleState(b.Stored)})
			continue
		}
		if b.ClearingPrice.Cmp(ucp) == 0 {
			marginal = append(marginal, b)
			continue
		}
		t0 := b.t0Amount(b.Stored.Order.Amount(), ucp)
		if b.Stored.IsBid {
			demand.Add(demand, t0)
		} else {
			supply.Add(supply, t0)
		}
		outcomes = append(outcomes, types.OrderOutcome{OrderID: b.Stored.ID, State: types.FillComplete})
	}

	var searcherOut *types.StoredOrder
	if searcher != nil {
		s := NewBookOrder(searcher)
		if s.eligible(ucp) {
			t0 := s.t0Amount(s.Stored.Order.Amount(), ucp)
			if s.Stored.IsBid {
				demand.Add(demand, t0)
			} else {
				supply.Add(supply, t0)
			}
			searcherOut = searcher
		}
	}

	sort.Slice(marginal, func(i, j int) bool {
		if marginal[i].Stored.IsBid != marginal[j].Stored.IsBid {
			return !marginal[i].Stored.IsBid
		}
		vi, vj := marginal[i].Stored.Priority.Volume, marginal[j].Stored.Priority.Volume
		if vi.Cmp(vj) != 0 {
			return vi.Cmp(vj) > 0
		}
		return marginal[i].Stored.ID.Hash.Cmp(marginal[j].Stored.ID.Hash) < 0
	})

	ammLeg, err := simulateAmmLeg(snap, ucp)
	if err != nil {
		return nil, err
	}
	imbalance := new(big.Int).Sub(supply, demand)
	imbalance.Add(imbalance, ammLeg.T0Signed())
	// Marginal bids are first counted at full volume so marginal asks
	// can trade against them; each bid then takes back its volume and
	// is allocated against what the asks actually filled.
	for _, b := range marginal {
		if b.Stored.IsBid {
			imbalance.Sub(imbalance, b.t0Amount(b.Stored.Order.Amount(), ucp))
		}
	}

	for _, b := range marginal {
		full := b.t0Amount(b.Stored.Order.Amount(), ucp)
		min := b.t0Amount(b.Stored.Order.MinAmount(), ucp)
		if b.Stored.IsBid {
			imbalance.Add(imbalance, full)
		}
		allocated, state := allocateMarginal(b.Stored.IsBid, imbalance, full, min)
		out := types.OrderOutcome{OrderID: b.Stored.ID, State: state}
		if state == types.FillPartial {
			out.Quantity = allocated
		}
		outcomes = append(outcomes, out)
	}

	reward := new(big.Int).Abs(imbalance)

	return &types.PoolSolution{
		PoolId:      poolID,
		UCP:         ucp,
		Searcher:    searcherOut,
		AmmQuantity: ammLeg,
		Limit:       outcomes,
		RewardT0:    reward,
		Fee:         snap.Fee,
	}, nil
}

// allocateMarginal decides how much of one margin-priced order to
// fill, given the running T0 imbalance still to close: asks only fill
// while imbalance is negative (more supply is still needed), bids
// only fill while it is positive (there is demand-side room left). It
// mutates imbalance in place by the amount allocated.
//
// An order that cannot reach min at the final UCP is always Killed,
// never left Unfilled or PartialFill(q<min): being priced exactly at
// the margin means it was eligible to trade this block, so the book
// not having room for it is a kill, not a carry-over. Exact orders
// have min equal to full, so they can only ever resolve to
// FillComplete or FillKilled; only partial orders can land strictly
// between the two.
func allocateMarginal(isBid bool, imbalance *big.Int, full, min *big.Int) (*big.Int, types.FillState) {
	var room *big.Int
	if isBid {
		if imbalance.Sign() <= 0 {
			return nil, types.FillKilled
		}
		room = new(big.Int).Set(imbalance)
	} else {
		if imbalance.Sign() >= 0 {
			return nil, types.FillKilled
		}
		room = new(big.Int).Neg(imbalance)
	}

	allocated := new(big.Int).Set(full)
	if allocated.Cmp(room) > 0 {
		allocated.Set(room)
	}
	if min != nil && allocated.Cmp(min) < 0 {
		return nil, types.FillKilled
	}

	if isBid {
		imbalance.Sub(imbalance, allocated)
	} else {
		imbalance.Add(imbalance, allocated)
	}

	if allocated.Cmp(full) == 0 {
		return allocated, types.FillComplete
	}
	return allocated, types.FillPartial
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry holds the one AMM snapshot per pool and
// arbitrates read access to it: the validator and matcher read
// through Get while the registry itself is the only writer, applying
// pool add/remove events and tick-window extensions. Nothing here
// moves a snapshot's price, tick or liquidity forward on a new block.
package registry

import (
	"errors"
	"sync"

	"github.com/angstrom-protocol/angstrom/amm"
	"github.com/angstrom-protocol/angstrom/types"
)

// ErrUnknownPool is returned by Get/LoadMoreTicks for a pool id the
// registry has never seen a NewPool event for.
var ErrUnknownPool = errors.New("registry: unknown pool")

// TickLoader fetches a window of tick state around startTick in the
// given direction, the collaborator that backs LoadMoreTicks. In
// production this reads from the L1 state provider; tests substitute
// an in-memory fake.
type TickLoader interface {
	LoadTicks(poolID types.PoolId, startTick int32, dir types.Direction, count int) (map[int32]types.TickInfo, error)
}

type poolEntry struct {
	mu       sync.RWMutex
	snapshot *amm.Snapshot
}

// Registry is the process-wide holder of per-pool AMM snapshots.
// Safe for concurrent use: the outer map lock only guards pool
// add/remove, while each pool's own snapshot is guarded independently
// so matching one pool never blocks on another.
type Registry struct {
	mu    sync.RWMutex
	pools map[types.PoolId]*poolEntry
	ticks TickLoader
}

// New builds an empty registry backed by the given tick loader.
func New(ticks TickLoader) *Registry {
	return &Registry{
		pools: make(map[types.PoolId]*poolEntry),
		ticks: ticks,
	}
}

// Get returns the current snapshot for poolID under a read lock, plus
// the unlock function the caller must invoke exactly once when done
//.
func (r *Registry) Get(poolID types.PoolId) (*amm.Snapshot, func(), error) {
	entry, ok := r.lookup(poolID)
	if !ok {
		return nil, nil, ErrUnknownPool
	}
	entry.mu.RLock()
	return entry.snapshot, entry.mu.RUnlock, nil
}

func (r *Registry) lookup(poolID types.PoolId) (*poolEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.pools[poolID]
	return e, ok
}

// LoadMoreTicks asks the tick loader to extend poolID's loaded window
// by count ticks starting at startTick in direction dir, returning a
// channel that receives exactly one error (nil on success) when the
// extension completes. A caller that got ErrTickNotLoaded from
// SwapToAmount/SwapToPrice can await it and retry the swap; the
// matching package returns that error without calling it.
func (r *Registry) LoadMoreTicks(poolID types.PoolId, startTick int32, dir types.Direction, count int) <-chan error {
	result := make(chan error, 1)
	entry, ok := r.lookup(poolID)
	if !ok {
		result <- ErrUnknownPool
		close(result)
		return result
	}

	go func() {
		defer close(result)
		loaded, err := r.ticks.LoadTicks(poolID, startTick, dir, count)
		if err != nil {
			result <- err
			return
		}

		entry.mu.Lock()
		defer entry.mu.Unlock()
		for tick, info := range loaded {
			entry.snapshot.Ticks[tick] = info
			if tick < entry.snapshot.MinLoadedTick {
				entry.snapshot.MinLoadedTick = tick
			}
			if tick > entry.snapshot.MaxLoadedTick {
				entry.snapshot.MaxLoadedTick = tick
			}
		}
		result <- nil
	}()
	return result
}

// HandlePoolEvent applies a NewPool or RemovedPool event from the L1
// block source. This never runs mid-block for a pool involved in an
// in-flight matching round — the caller is responsible for sequencing
// pool events outside any in-flight Get.
func (r *Registry) HandlePoolEvent(ev types.PoolEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case ev.NewPool != nil:
		id := ev.NewPool.ID()
		if _, exists := r.pools[id]; exists {
			return
		}
		r.pools[id] = &poolEntry{
			snapshot: &amm.Snapshot{
				PoolID:      id,
				Fee:         ev.NewPool.Fee,
				TickSpacing: ev.NewPool.TickSpacing,
				Ticks:       make(map[int32]types.TickInfo),
			},
		}
	case ev.RemovedPool != nil:
		delete(r.pools, *ev.RemovedPool)
	}
}

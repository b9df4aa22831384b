// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package orderpool stores validated orders and is the only component
// allowed to emit outbound order propagation. Its
// pending/parked maps, reverse indices, and new-block reorg handling
// follow a transaction-pool's pending/queued-by-nonce-gap shape: what
// there is "pending vs. queued transactions keyed by nonce gap" becomes
// "pending vs. parked orders keyed by priority loss", and what was
// per-address subpool reservation becomes per-pool, per-address
// reverse indexing.
package orderpool

import (
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/luxfi/geth/common"

	"github.com/angstrom-protocol/angstrom/types"
)

const (
	peerCacheSize  = 10240
	filledOrderTTL = 5 * time.Minute
)

type book struct {
	pending map[types.OrderId]*types.StoredOrder
	parked  map[types.OrderId]*types.StoredOrder
}

func newBook() *book {
	return &book{
		pending: make(map[types.OrderId]*types.StoredOrder),
		parked:  make(map[types.OrderId]*types.StoredOrder),
	}
}

type filledEntry struct {
	at time.Time
}

// Pool holds every validated order the node currently knows about.
type Pool struct {
	mu sync.RWMutex

	limitOrders    map[types.PoolId]*book
	searcherOrders map[types.PoolId]*types.StoredOrder

	// pendingFinalization pins orders that were chosen by the last
	// proposed bundle for a given block, keyed by block then hash, so
	// they can be dropped on finalization or resurfaced on reorg
	// instead of being matched again.
	pendingFinalization map[uint64]map[common.Hash]*types.StoredOrder

	filledOrders map[common.Hash]filledEntry

	byAddress map[common.Address]mapset.Set[types.OrderId]
	byHash    map[common.Hash]types.OrderId

	peers  map[string]*lru.Cache
	events chan PropagationEvent
}

// New builds an empty order pool. events is a buffered channel of
// outbound propagation decisions; the caller (the network manager,
// out of scope here) drains it and performs the actual send.
func New(eventBuffer int) *Pool {
	return &Pool{
		limitOrders:         make(map[types.PoolId]*book),
		searcherOrders:      make(map[types.PoolId]*types.StoredOrder),
		pendingFinalization: make(map[uint64]map[common.Hash]*types.StoredOrder),
		filledOrders:        make(map[common.Hash]filledEntry),
		byAddress:           make(map[common.Address]mapset.Set[types.OrderId]),
		byHash:              make(map[common.Hash]types.OrderId),
		peers:               make(map[string]*lru.Cache),
		events:              make(chan PropagationEvent, eventBuffer),
	}
}

// Events exposes the propagation decision stream.
func (p *Pool) Events() <-chan PropagationEvent {
	return p.events
}

func (p *Pool) bookFor(poolID types.PoolId) *book {
	b, ok := p.limitOrders[poolID]
	if !ok {
		b = newBook()
		p.limitOrders[poolID] = b
	}
	return b
}

// Add admits a validated order into the pool: the limit book for
// LocationLimit, or the single searcher slot for LocationSearcher
//.
func (p *Pool) Add(order *types.StoredOrder) error {
	p.mu.Lock()
	if _, exists := p.byHash[order.ID.Hash]; exists {
		p.mu.Unlock()
		return ErrAlreadyPresent
	}

	if order.ID.Location == types.LocationSearcher {
		if existing, ok := p.searcherOrders[order.PoolId]; ok {
			if !types.ValidationPriority(order.Order, existing.Order,
				order.ID.ReuseAvoidance, existing.ID.ReuseAvoidance,
				order.ID.Hash, existing.ID.Hash) {
				p.mu.Unlock()
				return ErrSearcherSlotTaken
			}
			p.removeIndices(existing.ID)
		}
		p.searcherOrders[order.PoolId] = order
	} else {
		b := p.bookFor(order.PoolId)
		if order.IsValid {
			b.pending[order.ID] = order
		} else {
			b.parked[order.ID] = order
		}
	}
	p.addIndices(order.ID)
	p.mu.Unlock()

	p.propagateAdd(order)
	return nil
}

func (p *Pool) addIndices(id types.OrderId) {
	p.byHash[id.Hash] = id
	set, ok := p.byAddress[id.Address]
	if !ok {
		set = mapset.NewThreadUnsafeSet[types.OrderId]()
		p.byAddress[id.Address] = set
	}
	set.Add(id)
}

func (p *Pool) removeIndices(id types.OrderId) {
	delete(p.byHash, id.Hash)
	if set, ok := p.byAddress[id.Address]; ok {
		set.Remove(id)
		if set.Cardinality() == 0 {
			delete(p.byAddress, id.Address)
		}
	}
}

// Cancel removes an order wherever it currently lives (pending,
// parked, or the searcher slot) and notifies peers.
func (p *Pool) Cancel(id types.OrderId, signer common.Address) error {
	p.mu.Lock()
	removed := p.removeLocked(id)
	p.mu.Unlock()
	if !removed {
		return ErrUnknownOrder
	}
	p.propagateCancel(types.CancelOrderRequest{UserAddress: signer, OrderHash: id.Hash})
	return nil
}

func (p *Pool) removeLocked(id types.OrderId) bool {
	if id.Location == types.LocationSearcher {
		if existing, ok := p.searcherOrders[id.PoolId]; ok && existing.ID.Hash == id.Hash {
			delete(p.searcherOrders, id.PoolId)
			p.removeIndices(id)
			return true
		}
		return false
	}
	b, ok := p.limitOrders[id.PoolId]
	if !ok {
		return false
	}
	if _, ok := b.pending[id]; ok {
		delete(b.pending, id)
		p.removeIndices(id)
		return true
	}
	if _, ok := b.parked[id]; ok {
		delete(b.parked, id)
		p.removeIndices(id)
		return true
	}
	return false
}

// Park moves an order from pending into parked: it remains known and
// indexed but is excluded from matching until PromoteParked runs
//.
func (p *Pool) Park(id types.OrderId) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.limitOrders[id.PoolId]
	if !ok {
		return ErrUnknownOrder
	}
	order, ok := b.pending[id]
	if !ok {
		return ErrUnknownOrder
	}
	delete(b.pending, id)
	order.IsValid = false
	b.parked[id] = order
	return nil
}

// PromoteParked moves a parked order back into pending, used after a
// freed balance or an expired competing order makes room for it again,
// the same reclassification a queued transaction gets once its nonce
// gap closes.
func (p *Pool) PromoteParked(id types.OrderId) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.limitOrders[id.PoolId]
	if !ok {
		return ErrUnknownOrder
	}
	order, ok := b.parked[id]
	if !ok {
		return ErrUnknownOrder
	}
	delete(b.parked, id)
	order.IsValid = true
	b.pending[id] = order
	return nil
}

// OrdersByPool returns the current book for a pool/location pair. For
// LocationSearcher it returns at most one order.
func (p *Pool) OrdersByPool(poolID types.PoolId, location types.OrderLocation) []*types.StoredOrder {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if location == types.LocationSearcher {
		if o, ok := p.searcherOrders[poolID]; ok {
			return []*types.StoredOrder{o}
		}
		return nil
	}
	b, ok := p.limitOrders[poolID]
	if !ok {
		return nil
	}
	out := make([]*types.StoredOrder, 0, len(b.pending))
	for _, o := range b.pending {
		out = append(out, o)
	}
	return out
}

// PendingOrdersFor returns every pending order across all pools for a
// given signer.
func (p *Pool) PendingOrdersFor(address common.Address) []*types.StoredOrder {
	p.mu.RLock()
	defer p.mu.RUnlock()

	set, ok := p.byAddress[address]
	if !ok {
		return nil
	}
	out := make([]*types.StoredOrder, 0, set.Cardinality())
	for id := range set.Iter() {
		if o := p.lookupLocked(id); o != nil && o.IsValid {
			out = append(out, o)
		}
	}
	return out
}

func (p *Pool) lookupLocked(id types.OrderId) *types.StoredOrder {
	if id.Location == types.LocationSearcher {
		return p.searcherOrders[id.PoolId]
	}
	b, ok := p.limitOrders[id.PoolId]
	if !ok {
		return nil
	}
	if o, ok := b.pending[id]; ok {
		return o
	}
	return b.parked[id]
}

// Status reports an order's current lifecycle state by hash.
func (p *Pool) Status(hash common.Hash) Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if _, ok := p.filledOrders[hash]; ok {
		return StatusFilled
	}
	for _, bucket := range p.pendingFinalization {
		if _, ok := bucket[hash]; ok {
			return StatusPinned
		}
	}
	id, ok := p.byHash[hash]
	if !ok {
		return StatusUnknown
	}
	if id.Location == types.LocationSearcher {
		return StatusPending
	}
	b := p.limitOrders[id.PoolId]
	if b == nil {
		return StatusUnknown
	}
	if _, ok := b.pending[id]; ok {
		return StatusPending
	}
	if _, ok := b.parked[id]; ok {
		return StatusParked
	}
	return StatusUnknown
}

// Pin removes the given orders from their active book and records
// them as finalization-pending for block, preventing re-matching
// while the proposed bundle awaits inclusion.
func (p *Pool) Pin(block uint64, ids []types.OrderId) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket, ok := p.pendingFinalization[block]
	if !ok {
		bucket = make(map[common.Hash]*types.StoredOrder)
		p.pendingFinalization[block] = bucket
	}
	for _, id := range ids {
		order := p.lookupLocked(id)
		if order == nil {
			continue
		}
		p.removeFromBookLocked(id)
		bucket[id.Hash] = order
	}
}

func (p *Pool) removeFromBookLocked(id types.OrderId) {
	if id.Location == types.LocationSearcher {
		delete(p.searcherOrders, id.PoolId)
		return
	}
	if b, ok := p.limitOrders[id.PoolId]; ok {
		delete(b.pending, id)
		delete(b.parked, id)
	}
}

// NewBlock advances the pool to a new L1 tip: filled orders are
// dropped into the short-TTL filled set (to suppress re-validation of
// gossip echoes), the block's pinned set is cleared, and orders
// belonging to changedAddresses get a chance to leave the parked
// state.
func (p *Pool) NewBlock(block uint64, filledHashes []common.Hash, changedAddresses []common.Address) {
	p.mu.Lock()
	now := time.Now()

	if bucket, ok := p.pendingFinalization[block]; ok {
		delete(p.pendingFinalization, block)
		for _, order := range bucket {
			p.removeIndices(order.ID)
		}
	}
	for _, hash := range filledHashes {
		if id, ok := p.byHash[hash]; ok {
			p.removeFromBookLocked(id)
			p.removeIndices(id)
		}
		p.filledOrders[hash] = filledEntry{at: now}
	}
	for hash, entry := range p.filledOrders {
		if now.Sub(entry.at) > filledOrderTTL {
			delete(p.filledOrders, hash)
		}
	}

	for _, addr := range changedAddresses {
		set, ok := p.byAddress[addr]
		if !ok {
			continue
		}
		for id := range set.Iter() {
			if id.Location == types.LocationSearcher {
				continue
			}
			if b, ok := p.limitOrders[id.PoolId]; ok {
				if order, ok := b.parked[id]; ok {
					delete(b.parked, id)
					order.IsValid = true
					b.pending[id] = order
				}
			}
		}
	}
	p.mu.Unlock()
}

// Reorg resurfaces orders that were pinned for finalization but whose
// block got reverted, so they re-enter the active book instead of
// being lost.
func (p *Pool) Reorg(orderHashes []common.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()

	wanted := make(map[common.Hash]bool, len(orderHashes))
	for _, h := range orderHashes {
		wanted[h] = true
	}
	for block, bucket := range p.pendingFinalization {
		for hash, order := range bucket {
			if !wanted[hash] {
				continue
			}
			delete(bucket, hash)
			if order.ID.Location == types.LocationSearcher {
				p.searcherOrders[order.PoolId] = order
			} else {
				b := p.bookFor(order.PoolId)
				b.pending[order.ID] = order
			}
			p.addIndices(order.ID)
		}
		if len(bucket) == 0 {
			delete(p.pendingFinalization, block)
		}
	}
}

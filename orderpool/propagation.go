// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package orderpool

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/angstrom-protocol/angstrom/types"
)

// PropagationEventKind tags which of PropagationEvent's two shapes is
// populated.
type PropagationEventKind uint8

const (
	PropagatePooledOrder PropagationEventKind = iota
	PropagateCancellation
)

// PropagationEvent is one outbound decision: send Order or Cancel to
// Peer. The network manager (out of scope here) drains Pool.Events
// and performs the actual send.
type PropagationEvent struct {
	Kind  PropagationEventKind
	Peer  string
	Order *types.StoredOrder
	Cancel types.CancelOrderRequest
}

// RegisterPeer opens a fresh de-duplicating LRU for peer and sends it
// the full current order set once.
func (p *Pool) RegisterPeer(peer string) error {
	cache, err := lru.New(peerCacheSize)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.peers[peer] = cache
	var snapshot []*types.StoredOrder
	for _, b := range p.limitOrders {
		for _, o := range b.pending {
			snapshot = append(snapshot, o)
		}
	}
	for _, o := range p.searcherOrders {
		snapshot = append(snapshot, o)
	}
	p.mu.Unlock()

	for _, o := range snapshot {
		cache.Add(o.ID.Hash, struct{}{})
		p.emit(PropagationEvent{Kind: PropagatePooledOrder, Peer: peer, Order: o})
	}
	return nil
}

// DropPeer discards a peer's de-duplication cache.
func (p *Pool) DropPeer(peer string) {
	p.mu.Lock()
	delete(p.peers, peer)
	p.mu.Unlock()
}

func (p *Pool) propagateAdd(order *types.StoredOrder) {
	p.mu.RLock()
	peers := make([]string, 0, len(p.peers))
	caches := make([]*lru.Cache, 0, len(p.peers))
	for peer, cache := range p.peers {
		peers = append(peers, peer)
		caches = append(caches, cache)
	}
	p.mu.RUnlock()

	for i, peer := range peers {
		cache := caches[i]
		if cache.Contains(order.ID.Hash) {
			continue
		}
		cache.Add(order.ID.Hash, struct{}{})
		p.emit(PropagationEvent{Kind: PropagatePooledOrder, Peer: peer, Order: order})
	}
}

func (p *Pool) propagateCancel(req types.CancelOrderRequest) {
	p.mu.RLock()
	peers := make([]string, 0, len(p.peers))
	caches := make([]*lru.Cache, 0, len(p.peers))
	for peer, cache := range p.peers {
		peers = append(peers, peer)
		caches = append(caches, cache)
	}
	p.mu.RUnlock()

	for i, peer := range peers {
		cache := caches[i]
		if cache.Contains(req.OrderHash) {
			continue
		}
		cache.Add(req.OrderHash, struct{}{})
		p.emit(PropagationEvent{Kind: PropagateCancellation, Peer: peer, Cancel: req})
	}
}

func (p *Pool) emit(ev PropagationEvent) {
	select {
	case p.events <- ev:
	default:
		// Slow consumer: drop rather than block the pool under lock-free
		// emission; the peer will still receive the order via its next
		// RegisterPeer snapshot or a later propagation event for a
		// related order.
	}
}

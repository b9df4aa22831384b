// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"sync"

	"github.com/angstrom-protocol/angstrom/types"
)

// attestationBus fans every empty-block attestation this node
// observes out to each currently-subscribed websocket client,
// satisfying rpcapi.AttestationSource.
type attestationBus struct {
	mu   sync.Mutex
	subs map[chan types.AttestAngstromBlockEmpty]struct{}
}

func newAttestationBus() *attestationBus {
	return &attestationBus{subs: make(map[chan types.AttestAngstromBlockEmpty]struct{})}
}

// Subscribe opens a new feed; the returned func removes and closes it.
func (b *attestationBus) Subscribe() (<-chan types.AttestAngstromBlockEmpty, func()) {
	ch := make(chan types.AttestAngstromBlockEmpty, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish fans att out to every live subscriber, dropping it for any
// subscriber whose buffer is full rather than blocking the caller.
func (b *attestationBus) Publish(att types.AttestAngstromBlockEmpty) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- att:
		default:
		}
	}
}

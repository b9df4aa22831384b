// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package blocksync provides the process-wide gate that keeps every
// subsystem advancing in lockstep with the chain: a module that needs
// to stop accepting new work during a block transition (the validator,
// the matcher, consensus) reads Coordinator.CanOperate before doing so
//.
package blocksync

import (
	"errors"
	"sync"
)

// ErrNotRegistered is returned by SignOff/SignOffRange for a module
// name that never called Register.
var ErrNotRegistered = errors.New("blocksync: module not registered")

// Coordinator tracks, per registered module name, the highest block it
// has signed off on, and gates further work on every module having
// caught up to the current block.
type Coordinator struct {
	mu           sync.Mutex
	signedOff    map[string]uint64
	currentBlock uint64
}

// NewCoordinator returns an empty coordinator at block 0.
func NewCoordinator() *Coordinator {
	return &Coordinator{signedOff: make(map[string]uint64)}
}

// Default is the process-wide coordinator instance. Tests that need isolation construct their
// own Coordinator with NewCoordinator instead of using Default.
var Default = NewCoordinator()

// Register admits name into the coordinator, initializing it as
// already signed off on the current block so it does not block
// CanOperate before it has had a chance to run.
func (c *Coordinator) Register(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signedOff[name] = c.currentBlock
}

// SignOff records that name has finished its work for block.
// Sign-offs only move forward: an older block number is ignored so a
// late or duplicate message cannot regress a module's progress.
func (c *Coordinator) SignOff(name string, block uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.signedOff[name]
	if !ok {
		return ErrNotRegistered
	}
	if block > last {
		c.signedOff[name] = block
	}
	return nil
}

// SignOffRange records a reorg's sign-off across [from, to]: any
// module that had already signed off past from (now invalidated by
// the reorg) is rolled back to to, the reorg's new tip.
func (c *Coordinator) SignOffRange(name string, from, to uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.signedOff[name]
	if !ok {
		return ErrNotRegistered
	}
	if last >= from {
		c.signedOff[name] = to
	}
	return nil
}

// AdvanceBlock moves the coordinator's notion of the current block
// forward. CanOperate returns false for any module still behind this
// block until it signs off.
func (c *Coordinator) AdvanceBlock(block uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentBlock = block
}

// CurrentBlock reports the block the coordinator is advancing modules
// toward.
func (c *Coordinator) CurrentBlock() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentBlock
}

// CanOperate reports whether every registered module has signed off on
// the current block. Modules that must pause during a transition read
// this before accepting new work.
func (c *Coordinator) CanOperate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, block := range c.signedOff {
		if block < c.currentBlock {
			return false
		}
	}
	return true
}

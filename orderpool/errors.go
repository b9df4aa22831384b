// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package orderpool

import "errors"

var (
	// ErrUnknownOrder is returned by cancel/park/status lookups that
	// miss both the pending and parked maps.
	ErrUnknownOrder = errors.New("orderpool: unknown order")

	// ErrAlreadyPresent is returned by add when the hash is already
	// tracked for that pool, pending or parked.
	ErrAlreadyPresent = errors.New("orderpool: order already present")

	// ErrSearcherSlotTaken is returned by add when a pool already has a
	// top-of-block candidate and the new one does not outrank it.
	ErrSearcherSlotTaken = errors.New("orderpool: searcher slot already filled by a higher-priority order")
)

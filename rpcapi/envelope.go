// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpcapi

import (
	"fmt"

	"github.com/angstrom-protocol/angstrom/types"
)

// OrderEnvelope is the JSON-RPC wire shape for a submitted order: a
// Kind tag plus exactly one populated concrete field. JSON2 (unlike
// the binary wire codec's linearcodec.RegisterType) has no notion of
// an interface-typed field, so callers send the tagged union instead.
type OrderEnvelope struct {
	Kind            types.OrderKind
	ExactStanding   *types.ExactStandingOrder   `json:",omitempty"`
	PartialStanding *types.PartialStandingOrder `json:",omitempty"`
	ExactFlash      *types.ExactFlashOrder      `json:",omitempty"`
	PartialFlash    *types.PartialFlashOrder    `json:",omitempty"`
	TopOfBlock      *types.TopOfBlockOrder      `json:",omitempty"`
}

// Order resolves the envelope to the concrete types.Order its Kind
// names, failing if that field was left unset.
func (e OrderEnvelope) Order() (types.Order, error) {
	switch e.Kind {
	case types.KindExactStanding:
		if e.ExactStanding == nil {
			return nil, fmt.Errorf("rpcapi: envelope kind %s missing its order body", e.Kind)
		}
		return e.ExactStanding, nil
	case types.KindPartialStanding:
		if e.PartialStanding == nil {
			return nil, fmt.Errorf("rpcapi: envelope kind %s missing its order body", e.Kind)
		}
		return e.PartialStanding, nil
	case types.KindExactFlash:
		if e.ExactFlash == nil {
			return nil, fmt.Errorf("rpcapi: envelope kind %s missing its order body", e.Kind)
		}
		return e.ExactFlash, nil
	case types.KindPartialFlash:
		if e.PartialFlash == nil {
			return nil, fmt.Errorf("rpcapi: envelope kind %s missing its order body", e.Kind)
		}
		return e.PartialFlash, nil
	case types.KindTopOfBlock:
		if e.TopOfBlock == nil {
			return nil, fmt.Errorf("rpcapi: envelope kind %s missing its order body", e.Kind)
		}
		return e.TopOfBlock, nil
	default:
		return nil, fmt.Errorf("rpcapi: unknown order kind %d", e.Kind)
	}
}

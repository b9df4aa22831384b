// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package matching

import "errors"

var (
	// errNotTopOfBlock signals a searcher slot holding something other
	// than a *types.TopOfBlockOrder, which should never happen: orderpool
	// rejects any other kind for that slot.
	errNotTopOfBlock = errors.New("matching: searcher order is not a top-of-block order")
)

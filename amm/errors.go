// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package amm

import "errors"

// ErrTickNotLoaded signals a swap stepped past the edge of the
// snapshot's loaded tick window. Registry.LoadMoreTicks extends the
// window; the matching package returns this error as is.
var ErrTickNotLoaded = errors.New("amm: tick not loaded")

var errZeroLiquidity = errors.New("amm: no liquidity available for swap")

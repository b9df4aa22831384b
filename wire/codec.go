// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"errors"

	"github.com/luxfi/node/codec"
	"github.com/luxfi/node/codec/linearcodec"

	"github.com/angstrom-protocol/angstrom/types"
)

const (
	CodecVersion = 0

	// MaxMessageSize bounds a single framed message, ID byte included
	//.
	MaxMessageSize = 10 * 1024 * 1024
)

// Codec encodes/decodes message payloads. Every concrete order variant
// is registered against the types.Order interface so a PreProposal's
// order slices round-trip regardless of which kind of order they hold.
var Codec codec.Manager

func init() {
	Codec = codec.NewManager(MaxMessageSize)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&types.ExactStandingOrder{}),
		lc.RegisterType(&types.PartialStandingOrder{}),
		lc.RegisterType(&types.ExactFlashOrder{}),
		lc.RegisterType(&types.PartialFlashOrder{}),
		lc.RegisterType(&types.TopOfBlockOrder{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}

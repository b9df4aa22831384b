// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metricsreport

import "github.com/angstrom-protocol/angstrom/roundconsensus"

// RoundStates lists every roundconsensus.State label, in enum order,
// for use with Recorder.SetRoundState.
var RoundStates = []string{
	roundconsensus.StatePrePropose.String(),
	roundconsensus.StatePreProposeAggregation.String(),
	roundconsensus.StatePropose.String(),
	roundconsensus.StateWaitForProposer.String(),
	roundconsensus.StateTerminal.String(),
}

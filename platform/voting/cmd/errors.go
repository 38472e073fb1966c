/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"

	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/finality"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitFailure = 2
)

// UsageError reports a missing or malformed command line argument.
type UsageError struct {
	Message string
	// Usage is the usage line of the offending command.
	Usage string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NotCommittedError reports a write whose batch did not reach the COMMITTED state.
type NotCommittedError struct {
	Outcome finality.Outcome
}

func (e *NotCommittedError) Error() string {
	return fmt.Sprintf("batch [%s] not committed: %s", e.Outcome.BatchID, e.Outcome)
}

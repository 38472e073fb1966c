/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package finality

import (
	"fmt"
	"time"

	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/rest"
)

// Status is the state of a submitted batch as seen by the client.
type Status string

const (
	Pending   Status = rest.StatusPending
	Committed Status = rest.StatusCommitted
	Invalid   Status = rest.StatusInvalid
	Unknown   Status = rest.StatusUnknown
	// TimedOut means the wait budget ran out while the gateway still reported
	// PENDING. The ledger-side fate of the batch is not known.
	TimedOut Status = "TIMED_OUT"
)

// Final reports whether no further polling can change the status.
func (s Status) Final() bool {
	return s != Pending
}

func (s Status) String() string {
	return string(s)
}

// Outcome is the resolution of a submitted batch.
type Outcome struct {
	BatchID string
	Status  Status
	// InvalidTransactions explains an INVALID status.
	InvalidTransactions []rest.InvalidTransaction
	// Polls is the number of status requests issued.
	Polls   int
	Elapsed time.Duration
}

func (o Outcome) Committed() bool {
	return o.Status == Committed
}

func (o Outcome) String() string {
	if len(o.InvalidTransactions) > 0 {
		return fmt.Sprintf("%s (%s)", o.Status, o.InvalidTransactions[0].Message)
	}
	return o.Status.String()
}

// SubmissionError reports that a batch list could not be delivered to the
// gateway. Nothing is known about the batches.
type SubmissionError struct {
	BatchIDs []string
	Err      error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed submitting [%d] batches: %v", len(e.BatchIDs), e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

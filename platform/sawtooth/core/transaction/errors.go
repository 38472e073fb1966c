/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transaction

import (
	"fmt"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
)

var (
	ErrEmptyBatch      = errors.New("batch must contain at least one transaction")
	ErrEmptyBatchList  = errors.New("batch list must contain at least one batch")
	ErrBatcherMismatch = errors.New("transaction does not declare the batch signer as batcher")
	ErrPayloadMismatch = errors.New("payload does not match the declared hash")
	ErrOrderMismatch   = errors.New("batch header does not match the carried transactions")
)

// SigningError reports that a header could not be signed. The envelope under
// construction is discarded.
type SigningError struct {
	What string
	Err  error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("failed signing %s: %v", e.What, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

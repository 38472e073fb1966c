/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"github.com/google/uuid"
)

func init() {
	// pooled randomness; nonces are built once per envelope on the hot path
	uuid.EnableRandPool()
}

// NewNonce returns a fresh random token suitable as a transaction nonce.
// Nonces only need to be unlikely to repeat for the same signer.
func NewNonce() string {
	return uuid.NewString()
}

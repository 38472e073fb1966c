/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

type Closer interface {
	Close() error
}

// CloseMute closes c, dropping the error. Used for response bodies that were fully read.
func CloseMute(c Closer) {
	if c == nil {
		return
	}
	_ = c.Close()
}

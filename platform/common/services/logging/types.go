/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Base64 logs lazily a byte array in base64 format
func Base64(b []byte) fmt.Stringer {
	return base64Enc(b)
}

type base64Enc []byte

func (b base64Enc) String() string {
	return base64.StdEncoding.EncodeToString(b)
}

// Strings logs lazily a list of strings, comma separated
func Strings[S ~string](s []S) fmt.Stringer {
	return stringList[S](s)
}

type stringList[S ~string] []S

func (l stringList[S]) String() string {
	parts := make([]string, len(l))
	for i, s := range l {
		parts[i] = string(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

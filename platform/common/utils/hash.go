/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package utils

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"

	"github.com/pkg/errors"
)

// SHA512Hex returns the lowercase hexadecimal SHA-512 digest of raw.
func SHA512Hex(raw []byte) string {
	digest := sha512.Sum512(raw)
	return hex.EncodeToString(digest[:])
}

// SHA512HexString is SHA512Hex over the UTF-8 bytes of s.
func SHA512HexString(s string) string {
	return SHA512Hex([]byte(s))
}

func SHA256(raw []byte) ([]byte, error) {
	hash := sha256.New()
	n, err := hash.Write(raw)
	if n != len(raw) {
		return nil, errors.Errorf("hash failure")
	}
	if err != nil {
		return nil, err
	}
	return hash.Sum(nil), nil
}

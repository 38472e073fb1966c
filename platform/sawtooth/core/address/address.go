/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package address derives the state addresses used by a transaction family.
//
// An address is 70 lowercase hex characters: a 6 character family namespace,
// a 6 character category prefix and the first 58 characters of the SHA-512 of
// the entity name.
package address

import (
	"fmt"
	"unicode/utf8"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/utils"
)

const (
	// PrefixLength is the length of both the namespace and the category prefix.
	PrefixLength = 6
	// EntityLength is the length of the entity digest suffix.
	EntityLength = 58
	// Length is the length of a full address.
	Length = 2*PrefixLength + EntityLength
)

// Address names a single slot of ledger state.
type Address string

func (a Address) String() string {
	return string(a)
}

// Namespace identifies the slice of global state owned by a transaction family.
type Namespace string

func (n Namespace) String() string {
	return string(n)
}

// DeriveNamespace returns the namespace prefix of the given family name.
// It panics on invalid UTF-8 input.
func DeriveNamespace(familyName string) Namespace {
	return Namespace(prefix(familyName))
}

// DeriveCategory returns the prefix disambiguating a sub-collection within a namespace.
// It panics on invalid UTF-8 input.
func DeriveCategory(categoryName string) string {
	return prefix(categoryName)
}

// For returns the address of entity in the given namespace and category.
// The empty entity name is a valid input.
func For(ns Namespace, category string, entity string) Address {
	mustUTF8(entity)
	return Address(string(ns) + category + utils.SHA512HexString(entity)[:EntityLength])
}

// Validate checks that addr has the shape of a state address.
func Validate(addr Address) error {
	if len(addr) != Length {
		return errors.Errorf("invalid address [%s]: expected %d characters, got %d", addr, Length, len(addr))
	}
	for i := 0; i < len(addr); i++ {
		c := addr[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return errors.Errorf("invalid address [%s]: character %q at %d is not lowercase hex", addr, c, i)
		}
	}
	return nil
}

func prefix(name string) string {
	mustUTF8(name)
	return utils.SHA512HexString(name)[:PrefixLength]
}

func mustUTF8(s string) {
	if !utf8.ValidString(s) {
		panic(fmt.Sprintf("address: input %q is not valid UTF-8", s))
	}
}

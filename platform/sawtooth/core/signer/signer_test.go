/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// private key 1, its public key is the curve generator
	oneKeyHex    = "0000000000000000000000000000000000000000000000000000000000000001"
	generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func TestFromHex(t *testing.T) {
	t.Parallel()

	s, err := FromHex(oneKeyHex + "\n")
	require.NoError(t, err)
	assert.Equal(t, generatorHex, s.PublicKeyHex())
	assert.Equal(t, oneKeyHex, s.PrivateKeyHex())

	_, err = FromHex("zz")
	assert.Error(t, err)
	_, err = FromHex("0102")
	assert.EqualError(t, err, "invalid private key length [2], expected [32]")
}

func TestFromHexFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "client.priv")
	require.NoError(t, os.WriteFile(path, []byte(oneKeyHex+"\n"), 0o600))

	s, err := FromHexFile(path)
	require.NoError(t, err)
	assert.Equal(t, generatorHex, s.PublicKeyHex())

	_, err = FromHexFile(filepath.Join(t.TempDir(), "missing.priv"))
	assert.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	s, err := NewRandom()
	require.NoError(t, err)
	assert.Len(t, s.PublicKeyHex(), 66)

	msg := []byte("serialized header")
	sig, err := s.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLength)
	require.NoError(t, Verify(s.PublicKeyHex(), msg, sig))

	// deterministic nonces: same key, same message, same signature
	again, err := s.Sign(msg)
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	tampered := append([]byte{}, msg...)
	tampered[0] ^= 0x01
	assert.Error(t, Verify(s.PublicKeyHex(), tampered, sig))

	other, err := NewRandom()
	require.NoError(t, err)
	assert.Error(t, Verify(other.PublicKeyHex(), msg, sig))

	assert.Error(t, Verify(s.PublicKeyHex(), msg, sig[:63]))
	assert.Error(t, Verify("not-hex", msg, sig))
}

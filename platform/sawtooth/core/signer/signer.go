/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/utils"
)

// SignatureLength is the length of a compact R||S signature.
const SignatureLength = 64

// Signer signs messages on behalf of a single identity.
type Signer interface {
	// Sign returns the signature of message.
	Sign(message []byte) ([]byte, error)
	// PublicKeyHex returns the hex encoded public key verifying the signatures.
	PublicKeyHex() string
}

// Secp256k1 signs SHA-256 digests with a secp256k1 key and emits 64 byte
// compact signatures, the format expected by the validator.
type Secp256k1 struct {
	sk    *btcec.PrivateKey
	pkHex string
}

func NewSecp256k1(sk *btcec.PrivateKey) *Secp256k1 {
	return &Secp256k1{
		sk:    sk,
		pkHex: hex.EncodeToString(sk.PubKey().SerializeCompressed()),
	}
}

// NewRandom returns a signer bound to a freshly generated ephemeral key.
func NewRandom() (*Secp256k1, error) {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrapf(err, "failed generating secp256k1 key")
	}
	return NewSecp256k1(sk), nil
}

// FromHex parses a hex encoded 32 byte private key.
func FromHex(skHex string) (*Secp256k1, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(skHex))
	if err != nil {
		return nil, errors.Wrapf(err, "private key is not hex encoded")
	}
	if len(raw) != btcec.PrivKeyBytesLen {
		return nil, errors.Errorf("invalid private key length [%d], expected [%d]", len(raw), btcec.PrivKeyBytesLen)
	}
	sk, _ := btcec.PrivKeyFromBytes(raw)
	return NewSecp256k1(sk), nil
}

// FromHexFile loads a key stored the way the ledger's keygen tool stores it:
// a single line of hex.
func FromHexFile(path string) (*Secp256k1, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading private key [%s]", path)
	}
	s, err := FromHex(string(raw))
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid private key [%s]", path)
	}
	return s, nil
}

func (s *Secp256k1) Sign(message []byte) ([]byte, error) {
	digest, err := utils.SHA256(message)
	if err != nil {
		return nil, err
	}
	sig, err := ecdsa.SignCompact(s.sk, digest, true)
	if err != nil {
		return nil, errors.Wrapf(err, "failed signing message")
	}
	// drop the recovery code
	return sig[1:], nil
}

func (s *Secp256k1) PublicKeyHex() string {
	return s.pkHex
}

// PrivateKeyHex returns the hex encoding of the private key.
func (s *Secp256k1) PrivateKeyHex() string {
	return hex.EncodeToString(s.sk.Serialize())
}

// Verify checks a compact signature of message against a hex encoded public key.
func Verify(pkHex string, message, signature []byte) error {
	raw, err := hex.DecodeString(pkHex)
	if err != nil {
		return errors.Wrapf(err, "public key is not hex encoded")
	}
	pk, err := btcec.ParsePubKey(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid public key [%s]", pkHex)
	}
	if len(signature) != SignatureLength {
		return errors.Errorf("invalid signature length [%d], expected [%d]", len(signature), SignatureLength)
	}
	var r, sc btcec.ModNScalar
	if overflow := r.SetByteSlice(signature[:32]); overflow {
		return errors.New("invalid signature: R overflows the curve order")
	}
	if overflow := sc.SetByteSlice(signature[32:]); overflow {
		return errors.New("invalid signature: S overflows the curve order")
	}
	digest, err := utils.SHA256(message)
	if err != nil {
		return err
	}
	if !ecdsa.NewSignature(&r, &sc).Verify(digest, pk) {
		return errors.New("signature verification failed")
	}
	return nil
}

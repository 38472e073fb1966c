/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transaction

import (
	"encoding/hex"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/utils"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/signer"
)

// Header declares who signs a transaction, which family processes it and
// which state it may touch.
type Header struct {
	BatcherPublicKey string
	Dependencies     []string
	FamilyName       string
	FamilyVersion    string
	Inputs           []address.Address
	Nonce            string
	Outputs          []address.Address
	PayloadSHA512    string
	SignerPublicKey  string
}

// Bytes returns the canonical serialization of the header.
func (h *Header) Bytes() []byte {
	return marshalHeader(h)
}

// Transaction is a signed state change. It must not be modified once signed:
// HeaderBytes are the exact bytes covered by HeaderSignature.
type Transaction struct {
	Header          *Header
	HeaderBytes     []byte
	HeaderSignature string
	Payload         []byte
}

// ID returns the transaction identifier, the hex encoded header signature.
func (t *Transaction) ID() string {
	return t.HeaderSignature
}

// Bytes returns the wire encoding of the transaction.
func (t *Transaction) Bytes() []byte {
	return marshalTransaction(t)
}

// Verify checks the header signature against the signer key declared in the
// serialized header.
func (t *Transaction) Verify() error {
	h, err := UnmarshalHeader(t.HeaderBytes)
	if err != nil {
		return err
	}
	sig, err := hex.DecodeString(t.HeaderSignature)
	if err != nil {
		return errors.Wrapf(err, "transaction signature is not hex encoded")
	}
	if err := signer.Verify(h.SignerPublicKey, t.HeaderBytes, sig); err != nil {
		return errors.WithMessagef(err, "invalid signature for transaction [%s]", shortID(t.HeaderSignature))
	}
	return nil
}

// VerifyPayload checks that the payload is the one committed to by the header.
func (t *Transaction) VerifyPayload() error {
	h, err := UnmarshalHeader(t.HeaderBytes)
	if err != nil {
		return err
	}
	if actual := utils.SHA512Hex(t.Payload); actual != h.PayloadSHA512 {
		return errors.Wrapf(ErrPayloadMismatch, "transaction [%s]: header declares [%s], payload hashes to [%s]",
			shortID(t.HeaderSignature), shortID(h.PayloadSHA512), shortID(actual))
	}
	return nil
}

// BatchHeader lists the transactions of a batch in execution order.
type BatchHeader struct {
	SignerPublicKey string
	TransactionIDs  []string
}

func (h *BatchHeader) Bytes() []byte {
	return marshalBatchHeader(h)
}

// Batch is a signed, ordered group of transactions committed atomically.
type Batch struct {
	Header          *BatchHeader
	HeaderBytes     []byte
	HeaderSignature string
	Transactions    []*Transaction
	// Trace asks the validator to log the batch processing.
	Trace bool
}

// ID returns the batch identifier, the hex encoded header signature.
func (b *Batch) ID() string {
	return b.HeaderSignature
}

func (b *Batch) Bytes() []byte {
	return marshalBatch(b)
}

// Verify checks the batch signature, that the header lists exactly the
// carried transactions in order, and every transaction.
func (b *Batch) Verify() error {
	h, err := UnmarshalBatchHeader(b.HeaderBytes)
	if err != nil {
		return err
	}
	sig, err := hex.DecodeString(b.HeaderSignature)
	if err != nil {
		return errors.Wrapf(err, "batch signature is not hex encoded")
	}
	if err := signer.Verify(h.SignerPublicKey, b.HeaderBytes, sig); err != nil {
		return errors.WithMessagef(err, "invalid signature for batch [%s]", shortID(b.HeaderSignature))
	}
	if len(h.TransactionIDs) != len(b.Transactions) {
		return errors.Wrapf(ErrOrderMismatch, "batch [%s] declares [%d] transactions, carries [%d]",
			shortID(b.HeaderSignature), len(h.TransactionIDs), len(b.Transactions))
	}
	for i, tx := range b.Transactions {
		if h.TransactionIDs[i] != tx.HeaderSignature {
			return errors.Wrapf(ErrOrderMismatch, "batch [%s] position [%d]: declared [%s], carried [%s]",
				shortID(b.HeaderSignature), i, shortID(h.TransactionIDs[i]), shortID(tx.HeaderSignature))
		}
		if err := tx.Verify(); err != nil {
			return err
		}
		if err := tx.VerifyPayload(); err != nil {
			return err
		}
	}
	return nil
}

// BatchList is the body of a submission request.
type BatchList struct {
	Batches []*Batch
}

// NewBatchList groups batches for a single submission.
func NewBatchList(batches ...*Batch) (*BatchList, error) {
	if len(batches) == 0 {
		return nil, ErrEmptyBatchList
	}
	return &BatchList{Batches: batches}, nil
}

func (l *BatchList) Bytes() []byte {
	return marshalBatchList(l)
}

// IDs returns the identifiers of the batches in submission order.
func (l *BatchList) IDs() []string {
	ids := make([]string, len(l.Batches))
	for i, b := range l.Batches {
		ids[i] = b.ID()
	}
	return ids
}

func shortID(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}

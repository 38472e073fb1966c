/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transaction

import (
	"encoding/hex"
	"slices"

	"github.com/hyperledger-labs/voting-client/pkg/utils"
	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/services/logging"
	utils2 "github.com/hyperledger-labs/voting-client/platform/common/utils"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/payload"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/signer"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("voting.transaction")

// DefaultFamilyVersion is the only version of the voting family.
const DefaultFamilyVersion = "1.0"

// Builder assembles signed transactions and batches for one family.
// It is safe for concurrent use.
type Builder struct {
	familyName    string
	familyVersion string
	signer        signer.Signer
	batcherKey    string
	encoding      payload.Encoding
	nonce         func() string
}

type Option func(*Builder)

// WithBatcher declares a batcher distinct from the transaction signer.
// The batches must then be signed with NewBatchWithSigner.
func WithBatcher(publicKeyHex string) Option {
	return func(b *Builder) {
		b.batcherKey = publicKeyHex
	}
}

// WithEncoding selects the payload encoding; the default is payload.CSV.
func WithEncoding(e payload.Encoding) Option {
	return func(b *Builder) {
		b.encoding = e
	}
}

func NewBuilder(familyName, familyVersion string, s signer.Signer, opts ...Option) *Builder {
	b := &Builder{
		familyName:    familyName,
		familyVersion: familyVersion,
		signer:        s,
		batcherKey:    s.PublicKeyHex(),
		encoding:      payload.CSV{},
		nonce:         utils.NewNonce,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewTransaction builds and signs a transaction carrying p. Inputs and outputs
// are declared in the given order, duplicates included.
func (b *Builder) NewTransaction(p payload.Payload, inputs, outputs []address.Address) (*Transaction, error) {
	raw, err := b.encoding.Encode(p)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed encoding payload")
	}
	header := &Header{
		BatcherPublicKey: b.batcherKey,
		Dependencies:     []string{},
		FamilyName:       b.familyName,
		FamilyVersion:    b.familyVersion,
		Inputs:           slices.Clone(inputs),
		Nonce:            b.nonce(),
		Outputs:          slices.Clone(outputs),
		PayloadSHA512:    utils2.SHA512Hex(raw),
		SignerPublicKey:  b.signer.PublicKeyHex(),
	}
	headerBytes := header.Bytes()
	sig, err := b.signer.Sign(headerBytes)
	if err != nil {
		return nil, &SigningError{What: "transaction header", Err: err}
	}
	tx := &Transaction{
		Header:          header,
		HeaderBytes:     headerBytes,
		HeaderSignature: hex.EncodeToString(sig),
		Payload:         raw,
	}
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("built transaction [%s], payload [%s], inputs %s, outputs %s",
			shortID(tx.ID()), logging.Base64(raw), logging.Strings(inputs), logging.Strings(outputs))
	}
	return tx, nil
}

// NewBatch signs a batch of txs with the builder's signer.
func (b *Builder) NewBatch(txs ...*Transaction) (*Batch, error) {
	return NewBatchWithSigner(b.signer, txs...)
}

// NewBatchWithSigner signs a batch of txs with batcher. Every transaction must
// declare batcher as its batcher. The batch header lists the transactions in
// the given order.
func NewBatchWithSigner(batcher signer.Signer, txs ...*Transaction) (*Batch, error) {
	if len(txs) == 0 {
		return nil, ErrEmptyBatch
	}
	batcherKey := batcher.PublicKeyHex()
	ids := make([]string, len(txs))
	for i, tx := range txs {
		if tx.Header.BatcherPublicKey != batcherKey {
			return nil, errors.Wrapf(ErrBatcherMismatch, "transaction [%s] at position [%d]", shortID(tx.ID()), i)
		}
		ids[i] = tx.HeaderSignature
	}
	header := &BatchHeader{
		SignerPublicKey: batcherKey,
		TransactionIDs:  ids,
	}
	headerBytes := header.Bytes()
	sig, err := batcher.Sign(headerBytes)
	if err != nil {
		return nil, &SigningError{What: "batch header", Err: err}
	}
	batch := &Batch{
		Header:          header,
		HeaderBytes:     headerBytes,
		HeaderSignature: hex.EncodeToString(sig),
		Transactions:    txs,
	}
	logger.Debugf("built batch [%s] with [%d] transactions", shortID(batch.ID()), len(txs))
	return batch, nil
}

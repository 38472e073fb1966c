/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transaction

import (
	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the validator's protobuf messages. Fields are always
// written in ascending order and empty scalars are omitted, which makes the
// encoding canonical.
const (
	headerBatcherPublicKey protowire.Number = 1
	headerDependencies     protowire.Number = 2
	headerFamilyName       protowire.Number = 3
	headerFamilyVersion    protowire.Number = 4
	headerInputs           protowire.Number = 5
	headerNonce            protowire.Number = 6
	headerOutputs          protowire.Number = 7
	headerPayloadSHA512    protowire.Number = 9
	headerSignerPublicKey  protowire.Number = 10

	txHeader          protowire.Number = 1
	txHeaderSignature protowire.Number = 2
	txPayload         protowire.Number = 3

	batchHeaderSignerPublicKey protowire.Number = 1
	batchHeaderTransactionIDs  protowire.Number = 2

	batchHeader          protowire.Number = 1
	batchHeaderSignature protowire.Number = 2
	batchTransactions    protowire.Number = 3
	batchTrace           protowire.Number = 4

	batchListBatches protowire.Number = 1
)

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// repeated elements are written even when empty
func appendRepeated[S ~string](b []byte, num protowire.Number, vs []S) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, string(v))
	}
	return b
}

func marshalHeader(h *Header) []byte {
	var b []byte
	b = appendString(b, headerBatcherPublicKey, h.BatcherPublicKey)
	b = appendRepeated(b, headerDependencies, h.Dependencies)
	b = appendString(b, headerFamilyName, h.FamilyName)
	b = appendString(b, headerFamilyVersion, h.FamilyVersion)
	b = appendRepeated(b, headerInputs, h.Inputs)
	b = appendString(b, headerNonce, h.Nonce)
	b = appendRepeated(b, headerOutputs, h.Outputs)
	b = appendString(b, headerPayloadSHA512, h.PayloadSHA512)
	b = appendString(b, headerSignerPublicKey, h.SignerPublicKey)
	return b
}

func marshalTransaction(tx *Transaction) []byte {
	var b []byte
	b = appendBytes(b, txHeader, tx.HeaderBytes)
	b = appendString(b, txHeaderSignature, tx.HeaderSignature)
	b = appendBytes(b, txPayload, tx.Payload)
	return b
}

func marshalBatchHeader(h *BatchHeader) []byte {
	var b []byte
	b = appendString(b, batchHeaderSignerPublicKey, h.SignerPublicKey)
	b = appendRepeated(b, batchHeaderTransactionIDs, h.TransactionIDs)
	return b
}

func marshalBatch(batch *Batch) []byte {
	var b []byte
	b = appendBytes(b, batchHeader, batch.HeaderBytes)
	b = appendString(b, batchHeaderSignature, batch.HeaderSignature)
	for _, tx := range batch.Transactions {
		b = protowire.AppendTag(b, batchTransactions, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalTransaction(tx))
	}
	if batch.Trace {
		b = protowire.AppendTag(b, batchTrace, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	return b
}

func marshalBatchList(l *BatchList) []byte {
	var b []byte
	for _, batch := range l.Batches {
		b = protowire.AppendTag(b, batchListBatches, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalBatch(batch))
	}
	return b
}

// fields walks the length-delimited fields of a message.
func fields(raw []byte, f func(num protowire.Number, v []byte) error) error {
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return errors.Wrapf(protowire.ParseError(n), "invalid tag")
		}
		raw = raw[n:]
		if typ != protowire.BytesType {
			return errors.Errorf("unexpected wire type [%d] for field [%d]", typ, num)
		}
		v, n := protowire.ConsumeBytes(raw)
		if n < 0 {
			return errors.Wrapf(protowire.ParseError(n), "invalid value for field [%d]", num)
		}
		raw = raw[n:]
		if err := f(num, v); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalHeader parses serialized transaction header bytes.
func UnmarshalHeader(raw []byte) (*Header, error) {
	h := &Header{}
	err := fields(raw, func(num protowire.Number, v []byte) error {
		s := string(v)
		switch num {
		case headerBatcherPublicKey:
			h.BatcherPublicKey = s
		case headerDependencies:
			h.Dependencies = append(h.Dependencies, s)
		case headerFamilyName:
			h.FamilyName = s
		case headerFamilyVersion:
			h.FamilyVersion = s
		case headerInputs:
			h.Inputs = append(h.Inputs, address.Address(s))
		case headerNonce:
			h.Nonce = s
		case headerOutputs:
			h.Outputs = append(h.Outputs, address.Address(s))
		case headerPayloadSHA512:
			h.PayloadSHA512 = s
		case headerSignerPublicKey:
			h.SignerPublicKey = s
		default:
			return errors.Errorf("unknown transaction header field [%d]", num)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed unmarshalling transaction header")
	}
	return h, nil
}

// UnmarshalBatchHeader parses serialized batch header bytes.
func UnmarshalBatchHeader(raw []byte) (*BatchHeader, error) {
	h := &BatchHeader{}
	err := fields(raw, func(num protowire.Number, v []byte) error {
		switch num {
		case batchHeaderSignerPublicKey:
			h.SignerPublicKey = string(v)
		case batchHeaderTransactionIDs:
			h.TransactionIDs = append(h.TransactionIDs, string(v))
		default:
			return errors.Errorf("unknown batch header field [%d]", num)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed unmarshalling batch header")
	}
	return h, nil
}

// UnmarshalBatchList parses a serialized batch list, as received by the gateway.
// Headers are decoded too; signatures are not checked, see Batch.Verify.
func UnmarshalBatchList(raw []byte) (*BatchList, error) {
	l := &BatchList{}
	err := fields(raw, func(num protowire.Number, v []byte) error {
		if num != batchListBatches {
			return errors.Errorf("unknown batch list field [%d]", num)
		}
		b, err := unmarshalBatch(v)
		if err != nil {
			return err
		}
		l.Batches = append(l.Batches, b)
		return nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed unmarshalling batch list")
	}
	return l, nil
}

func unmarshalBatch(raw []byte) (*Batch, error) {
	b := &Batch{}
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return nil, errors.Wrapf(protowire.ParseError(n), "invalid tag")
		}
		raw = raw[n:]
		if num == batchTrace && typ == protowire.VarintType {
			x, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "invalid trace flag")
			}
			raw = raw[n:]
			b.Trace = protowire.DecodeBool(x)
			continue
		}
		if typ != protowire.BytesType {
			return nil, errors.Errorf("unexpected wire type [%d] for field [%d]", typ, num)
		}
		v, n := protowire.ConsumeBytes(raw)
		if n < 0 {
			return nil, errors.Wrapf(protowire.ParseError(n), "invalid value for field [%d]", num)
		}
		raw = raw[n:]

		switch num {
		case batchHeader:
			h, err := UnmarshalBatchHeader(v)
			if err != nil {
				return nil, err
			}
			b.Header, b.HeaderBytes = h, v
		case batchHeaderSignature:
			b.HeaderSignature = string(v)
		case batchTransactions:
			tx, err := unmarshalTransaction(v)
			if err != nil {
				return nil, err
			}
			b.Transactions = append(b.Transactions, tx)
		default:
			return nil, errors.Errorf("unknown batch field [%d]", num)
		}
	}
	return b, nil
}

func unmarshalTransaction(raw []byte) (*Transaction, error) {
	tx := &Transaction{}
	err := fields(raw, func(num protowire.Number, v []byte) error {
		switch num {
		case txHeader:
			h, err := UnmarshalHeader(v)
			if err != nil {
				return err
			}
			tx.Header, tx.HeaderBytes = h, v
		case txHeaderSignature:
			tx.HeaderSignature = string(v)
		case txPayload:
			tx.Payload = v
		default:
			return errors.Errorf("unknown transaction field [%d]", num)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transaction

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalHeaderFieldOrder(t *testing.T) {
	t.Parallel()

	h := &Header{
		FamilyName:      "voting",
		FamilyVersion:   "1.0",
		Inputs:          []address.Address{"ab"},
		Outputs:         []address.Address{"cd", ""},
		SignerPublicKey: "02",
	}
	expected := []byte{
		0x1a, 0x06, 'v', 'o', 't', 'i', 'n', 'g', // 3: family_name
		0x22, 0x03, '1', '.', '0', // 4: family_version
		0x2a, 0x02, 'a', 'b', // 5: inputs
		0x3a, 0x02, 'c', 'd', // 7: outputs
		0x3a, 0x00, // 7: outputs, empty element kept
		0x52, 0x02, '0', '2', // 10: signer_public_key
	}
	assert.Equal(t, expected, h.Bytes())

	parsed, err := UnmarshalHeader(expected)
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
}

func TestUnmarshalHeaderRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := UnmarshalHeader([]byte{0x08, 0x01})
	assert.Error(t, err)
	_, err = UnmarshalHeader([]byte{0x1a, 0x09, 'v'})
	assert.Error(t, err)
	_, err = UnmarshalBatchHeader([]byte{0x1a, 0x01, 'v'})
	assert.EqualError(t, err, "failed unmarshalling batch header: unknown batch header field [3]")
}

func TestUnmarshalBatchList(t *testing.T) {
	t.Parallel()

	s := testSigner(t)
	r, addrs := addresses(t)
	b := NewBuilder(address.FamilyName, DefaultFamilyVersion, s)

	tx1, err := b.NewTransaction(payload.AddParty{Name: "Reds"}, addrs[:1], []address.Address{addrs[0], r.PartyAddress("Reds")})
	require.NoError(t, err)
	tx2, err := b.NewTransaction(payload.VoteFor{Voter: "voter1", Party: "Reds"}, addrs, addrs)
	require.NoError(t, err)
	batch, err := b.NewBatch(tx1, tx2)
	require.NoError(t, err)
	batch.Trace = true
	list, err := NewBatchList(batch)
	require.NoError(t, err)

	parsed, err := UnmarshalBatchList(list.Bytes())
	require.NoError(t, err)
	require.Len(t, parsed.Batches, 1)
	got := parsed.Batches[0]
	assert.Equal(t, batch.HeaderSignature, got.HeaderSignature)
	assert.Equal(t, batch.HeaderBytes, got.HeaderBytes)
	assert.Equal(t, []string{tx1.ID(), tx2.ID()}, got.Header.TransactionIDs)
	assert.True(t, got.Trace)
	require.Len(t, got.Transactions, 2)
	for i, tx := range []*Transaction{tx1, tx2} {
		// empty dependencies come back as nil
		if diff := cmp.Diff(tx.Header, got.Transactions[i].Header, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("transaction [%d] header mismatch (-want +got):\n%s", i, diff)
		}
	}
	assert.Equal(t, addrs, got.Transactions[1].Header.Inputs)
	assert.Equal(t, "votefor,voter1,Reds", string(got.Transactions[1].Payload))
	assert.NoError(t, got.Verify())

	_, err = UnmarshalBatchList([]byte{0x12, 0x00})
	assert.Error(t, err)
}

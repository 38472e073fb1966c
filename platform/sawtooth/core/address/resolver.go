/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package address

const (
	// FamilyName is the transaction family served by the voting processor.
	FamilyName = "voting"

	votersCategory   = "voters"
	entriesCategory  = "voting-entries"
	votersListEntity = "voters-list"
	partiesEntity    = "parties"
)

// Resolver computes the addresses of the voting family.
// It holds no mutable state and can be shared across goroutines.
type Resolver struct {
	namespace Namespace
	voters    string
	entries   string

	votersTable  Address
	partiesTable Address
}

// NewResolver returns a resolver bound to the namespace of familyName.
func NewResolver(familyName string) *Resolver {
	r := &Resolver{
		namespace: DeriveNamespace(familyName),
		voters:    DeriveCategory(votersCategory),
		entries:   DeriveCategory(entriesCategory),
	}
	r.votersTable = For(r.namespace, r.voters, votersListEntity)
	r.partiesTable = For(r.namespace, r.entries, partiesEntity)
	return r
}

func (r *Resolver) Namespace() Namespace {
	return r.namespace
}

// PartyAddress is where the vote count of a party lives.
func (r *Resolver) PartyAddress(party string) Address {
	return For(r.namespace, r.entries, party)
}

func (r *Resolver) VoterAddress(voter string) Address {
	return For(r.namespace, r.voters, voter)
}

// PartiesTable is the roster of all registered parties.
func (r *Resolver) PartiesTable() Address {
	return r.partiesTable
}

// VotersTable is the roster of all voters who cast a vote.
func (r *Resolver) VotersTable() Address {
	return r.votersTable
}

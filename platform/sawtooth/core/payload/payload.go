/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package payload defines the commands carried by voting transactions and
// their byte encodings.
package payload

const (
	AddPartyAction = "addparty"
	VoteForAction  = "votefor"
)

// Payload is a command understood by the transaction processor.
type Payload interface {
	// Action names the command.
	Action() string
	// Arguments returns the command arguments in wire order.
	Arguments() []string
}

// AddParty registers a new party.
type AddParty struct {
	Name string
}

func (p AddParty) Action() string { return AddPartyAction }

func (p AddParty) Arguments() []string { return []string{p.Name} }

// VoteFor casts the vote of Voter for Party.
type VoteFor struct {
	Voter string
	Party string
}

func (p VoteFor) Action() string { return VoteForAction }

func (p VoteFor) Arguments() []string { return []string{p.Voter, p.Party} }

// Command is a free form action with a single argument.
type Command struct {
	Name     string
	Argument string
}

func (c Command) Action() string { return c.Name }

func (c Command) Arguments() []string { return []string{c.Argument} }

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"context"

	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/finality"
	"github.com/spf13/cobra"
)

func (a *app) addPartyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addparty <party>",
		Short: "Register a party.",
		Args:  exactArgs("Enter party name.", "party"),
		RunE: func(cmd *cobra.Command, args []string) error {
			party := args[0]
			logger.Infof("addparty command: %s", party)
			outcome, err := a.svc.AddParty(cmd.Context(), party)
			if err != nil {
				return err
			}
			if outcome.Status == finality.Pending {
				// no wait budget: submitted, commit not awaited
				logger.Infof("%s submitted", party)
				a.println("Party", party, "submitted, commit pending")
				return nil
			}
			if !outcome.Committed() {
				logger.Infof("%s not added", party)
				a.println(party, "not added:", outcome)
				return &NotCommittedError{Outcome: outcome}
			}
			logger.Infof("%s added", party)
			a.println("Party added", party)
			return nil
		},
	}
}

func (a *app) voteForCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "votefor <voter> <party>",
		Short: "Cast the vote of a voter for a party.",
		Args:  exactArgs("Enter voter and party name.", "voter", "party"),
		RunE: func(cmd *cobra.Command, args []string) error {
			voter, party := args[0], args[1]
			logger.Infof("votefor command: voter: %s, party: %s", voter, party)
			outcome, err := a.svc.CastVote(cmd.Context(), voter, party)
			if err != nil {
				return err
			}
			if outcome.Status == finality.Pending {
				logger.Infof("vote of %s submitted", voter)
				a.println("Vote of", voter, "submitted, commit pending")
				return nil
			}
			if !outcome.Committed() {
				logger.Infof("didn't vote for %s", voter)
				a.println("Didn't Cast vote for", voter+":", outcome)
				return &NotCommittedError{Outcome: outcome}
			}
			logger.Infof("voted for %s", voter)
			a.println("Casted vote for", voter)
			return nil
		},
	}
}

func (a *app) voteCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "votecount <party>",
		Short: "Print the number of votes of a party.",
		Args:  exactArgs("Enter party name.", "party"),
		RunE: func(cmd *cobra.Command, args []string) error {
			party := args[0]
			logger.Infof("votecount command: %s", party)
			return a.printLookup(cmd.Context(), "No.of votes for "+party+":", func(ctx context.Context) (string, bool, error) {
				return a.svc.PartyVoteCount(ctx, party)
			})
		},
	}
}

func (a *app) listPartiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listparties",
		Short: "Print the registered parties.",
		Args:  exactArgs(""),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Infof("listparties command")
			return a.printLookup(cmd.Context(), "The Parties:", a.svc.ListParties)
		},
	}
}

func (a *app) listVotersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listvoters",
		Short: "Print the voters that cast a vote.",
		Args:  exactArgs(""),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Infof("listvoters command")
			return a.printLookup(cmd.Context(), "The Voters:", a.svc.ListVoters)
		},
	}
}

func (a *app) printLookup(ctx context.Context, label string, lookup func(context.Context) (string, bool, error)) error {
	v, found, err := lookup(ctx)
	if err != nil {
		return err
	}
	if !found {
		v = NoValue
	}
	a.println(label, v)
	return nil
}

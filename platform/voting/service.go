/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package voting

import (
	"context"
	"time"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/services/logging"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/finality"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/payload"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/rest"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/transaction"
)

var logger = logging.MustGetLogger("voting")

// DefaultWait is how long write actions wait for their batch to be committed.
const DefaultWait = 5 * time.Second

// StateReader reads single entries of the ledger state.
type StateReader interface {
	State(ctx context.Context, addr address.Address) ([]byte, error)
}

// Submitter delivers batch lists and resolves the outcome of their first batch.
type Submitter interface {
	SubmitAndWait(ctx context.Context, list *transaction.BatchList, maxWait time.Duration) (finality.Outcome, error)
}

// Service implements the actions of the voting family on top of a ledger gateway.
type Service struct {
	resolver  *address.Resolver
	builder   *transaction.Builder
	submitter Submitter
	state     StateReader
	wait      time.Duration
}

func NewService(resolver *address.Resolver, builder *transaction.Builder, submitter Submitter, state StateReader, wait time.Duration) *Service {
	return &Service{
		resolver:  resolver,
		builder:   builder,
		submitter: submitter,
		state:     state,
		wait:      wait,
	}
}

// AddParty registers party and waits for the outcome of the submission.
func (s *Service) AddParty(ctx context.Context, party string) (finality.Outcome, error) {
	logger.Infof("addparty(%s)", party)
	table := s.resolver.PartiesTable()
	return s.submit(ctx,
		payload.AddParty{Name: party},
		[]address.Address{table},
		[]address.Address{table, s.resolver.PartyAddress(party)},
	)
}

// CastVote records the vote of voter for party and waits for the outcome of
// the submission.
func (s *Service) CastVote(ctx context.Context, voter, party string) (finality.Outcome, error) {
	logger.Infof("votefor(%s, %s)", voter, party)
	addrs := []address.Address{
		s.resolver.PartiesTable(),
		s.resolver.VotersTable(),
		s.resolver.PartyAddress(party),
	}
	return s.submit(ctx, payload.VoteFor{Voter: voter, Party: party}, addrs, addrs)
}

// PartyVoteCount returns the vote count stored for party. The boolean is false
// when the ledger holds no readable value for it.
func (s *Service) PartyVoteCount(ctx context.Context, party string) (string, bool, error) {
	return s.lookup(ctx, s.resolver.PartyAddress(party))
}

// ListParties returns the list of registered parties as stored on the ledger.
func (s *Service) ListParties(ctx context.Context) (string, bool, error) {
	return s.lookup(ctx, s.resolver.PartiesTable())
}

// ListVoters returns the list of voters as stored on the ledger.
func (s *Service) ListVoters(ctx context.Context) (string, bool, error) {
	return s.lookup(ctx, s.resolver.VotersTable())
}

func (s *Service) submit(ctx context.Context, p payload.Payload, inputs, outputs []address.Address) (finality.Outcome, error) {
	tx, err := s.builder.NewTransaction(p, inputs, outputs)
	if err != nil {
		return finality.Outcome{}, errors.WithMessagef(err, "failed building [%s] transaction", p.Action())
	}
	batch, err := s.builder.NewBatch(tx)
	if err != nil {
		return finality.Outcome{}, errors.WithMessagef(err, "failed building [%s] batch", p.Action())
	}
	list, err := transaction.NewBatchList(batch)
	if err != nil {
		return finality.Outcome{}, err
	}

	outcome, err := s.submitter.SubmitAndWait(ctx, list, s.wait)
	if err != nil {
		return outcome, errors.WithMessagef(err, "[%s] failed", p.Action())
	}
	logger.Infof("[%s] batch [%s] resolved as [%s]", p.Action(), batch.ID(), outcome)
	return outcome, nil
}

// lookup treats a missing, empty or malformed entry as an absent value. Any
// other failure is returned.
func (s *Service) lookup(ctx context.Context, addr address.Address) (string, bool, error) {
	logger.Infof("reading state [%s]", addr)
	raw, err := s.state.State(ctx, addr)
	switch {
	case err == nil && len(raw) == 0:
		logger.Debugf("empty value at [%s]", addr)
		return "", false, nil
	case err == nil:
		return string(raw), true, nil
	case errors.HasCause(err, rest.ErrNotFound), rest.IsDecode(err):
		logger.Debugf("no value at [%s]: %v", addr, err)
		return "", false, nil
	default:
		return "", false, errors.WithMessagef(err, "failed reading [%s]", addr)
	}
}

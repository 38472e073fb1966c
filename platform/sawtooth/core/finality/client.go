/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package finality

import (
	"context"
	"time"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/services/logging"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/rest"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/transaction"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("voting.finality")

// Gateway is the part of the ledger gateway needed to submit and track batches.
type Gateway interface {
	SubmitBatches(ctx context.Context, batchList []byte) (*rest.SubmitResponse, error)
	BatchStatus(ctx context.Context, batchID string, wait time.Duration) (*rest.BatchStatus, error)
}

// Client submits batch lists and resolves the outcome of their batches.
// It is safe for concurrent use.
type Client struct {
	gateway Gateway
	metrics *Metrics
	now     func() time.Time
}

type Option func(*Client)

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClock replaces the wall clock used to enforce the wait budget.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(gateway Gateway, opts ...Option) *Client {
	c := &Client{
		gateway: gateway,
		metrics: NewMetrics(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit sends the batch list in a single request. Failures are returned as
// SubmissionError and never retried.
func (c *Client) Submit(ctx context.Context, list *transaction.BatchList) (*rest.SubmitResponse, error) {
	ids := list.IDs()
	resp, err := c.gateway.SubmitBatches(ctx, list.Bytes())
	if err != nil {
		c.metrics.SubmitFailures.Inc()
		logger.Errorf("failed submitting batches [%v]: %v", shortIDs(ids), err)
		return nil, &SubmissionError{BatchIDs: ids, Err: err}
	}
	c.metrics.Submitted.Add(float64(len(ids)))
	if logger.IsEnabledFor(zapcore.DebugLevel) {
		logger.Debugf("submitted batches [%v], link [%s]", shortIDs(ids), resp.Link)
	}
	return resp, nil
}

// AwaitOutcome polls the status of batchID until it is no longer PENDING or
// maxWait has elapsed on the wall clock, whichever comes first. Each poll asks
// the gateway to hold the request for the remaining budget; no delay is added
// between polls.
//
// A non-positive maxWait returns a PENDING outcome without contacting the gateway.
// Cancelling ctx stops the wait and returns the context error.
func (c *Client) AwaitOutcome(ctx context.Context, batchID string, maxWait time.Duration) (outcome Outcome, err error) {
	outcome = Outcome{BatchID: batchID, Status: Pending}
	if maxWait <= 0 {
		return outcome, nil
	}

	start := c.now()
	deadline := start.Add(maxWait)
	defer func() {
		outcome.Elapsed = c.now().Sub(start)
		c.metrics.WaitDuration.Observe(outcome.Elapsed.Seconds())
	}()

	for {
		if err := ctx.Err(); err != nil {
			return outcome, errors.Wrapf(err, "stopped waiting for batch [%s]", short(batchID))
		}
		remaining := deadline.Sub(c.now())
		if remaining <= 0 {
			break
		}

		status, err := c.poll(ctx, batchID, remaining)
		outcome.Polls++
		if err != nil {
			if ctx.Err() == nil && errors.HasCause(err, context.DeadlineExceeded) {
				// the poll itself hit the budget
				break
			}
			return outcome, errors.WithMessagef(err, "failed polling batch [%s]", short(batchID))
		}
		if s := Status(status.Status); s.Final() {
			outcome.Status = s
			outcome.InvalidTransactions = status.InvalidTransactions
			c.metrics.Outcomes.WithLabelValues(s.String()).Inc()
			logger.Debugf("batch [%s] is [%s] after [%d] polls", short(batchID), s, outcome.Polls)
			return outcome, nil
		}
	}

	outcome.Status = TimedOut
	c.metrics.Outcomes.WithLabelValues(TimedOut.String()).Inc()
	logger.Warnf("batch [%s] still pending after [%s], giving up", short(batchID), maxWait)
	return outcome, nil
}

func (c *Client) poll(ctx context.Context, batchID string, remaining time.Duration) (*rest.BatchStatus, error) {
	c.metrics.Polls.Inc()
	pollCtx, cancel := context.WithTimeout(ctx, remaining)
	defer cancel()
	return c.gateway.BatchStatus(pollCtx, batchID, remaining)
}

// SubmitAndWait submits the batch list and waits for the outcome of its first batch.
func (c *Client) SubmitAndWait(ctx context.Context, list *transaction.BatchList, maxWait time.Duration) (Outcome, error) {
	if _, err := c.Submit(ctx, list); err != nil {
		return Outcome{}, err
	}
	return c.AwaitOutcome(ctx, list.Batches[0].ID(), maxWait)
}

func short(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}

func shortIDs(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = short(id)
	}
	return out
}

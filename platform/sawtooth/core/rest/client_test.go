/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(&Config{URL: srv.URL + "/", RequestTimeout: 5 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	c, err := NewClient(&Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultURL, c.URL())

	c, err = NewClient(&Config{URL: "http://localhost:8008/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8008", c.URL())

	_, err = NewClient(&Config{URL: "ftp://localhost"})
	assert.Error(t, err)
}

func TestSubmitBatches(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/batches", r.URL.Path)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x0a, 0x01, 0x00}, body)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"link": "http://rest-api:8008/batch_statuses?id=abc"}`))
	})

	resp, err := c.SubmitBatches(context.Background(), []byte{0x0a, 0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, "http://rest-api:8008/batch_statuses?id=abc", resp.Link)
}

func TestSubmitBatchesNonSuccessStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 35, "title": "Submitted Batches Invalid", "message": "The submitted BatchList was rejected by the validator."}}`))
	})

	_, err := c.SubmitBatches(context.Background(), []byte{0x0a})
	require.Error(t, err)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusBadRequest, te.StatusCode)
	assert.Equal(t, "The submitted BatchList was rejected by the validator.", te.Message)
	assert.True(t, IsTransport(err))
	assert.False(t, te.NotFound())
}

func TestConnectionFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()

	c, err := NewClient(&Config{URL: u})
	require.NoError(t, err)
	_, err = c.SubmitBatches(context.Background(), []byte{0x0a})
	require.Error(t, err)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.NotNil(t, te.Err)
	assert.Contains(t, err.Error(), "failed to connect to")
}

func TestBatchStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/batch_statuses", r.URL.Path)
		assert.Equal(t, "b1", r.URL.Query().Get("id"))
		assert.Equal(t, "3", r.URL.Query().Get("wait"))
		_, _ = w.Write([]byte(`{
  "data": [
    {
      "id": "b1",
      "invalid_transactions": [{"id": "t1", "message": "party already exists"}],
      "status": "INVALID"
    }
  ],
  "link": "http://rest-api:8008/batch_statuses?id=b1"
}`))
	})

	status, err := c.BatchStatus(context.Background(), "b1", 2500*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, StatusInvalid, status.Status)
	assert.Equal(t, []InvalidTransaction{{ID: "t1", Message: "party already exists"}}, status.InvalidTransactions)
}

func TestBatchStatusEmptyData(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	_, err := c.BatchStatus(context.Background(), "b1", time.Second)
	require.Error(t, err)
	assert.True(t, IsDecode(err))
}

func TestState(t *testing.T) {
	t.Parallel()

	r := address.NewResolver(address.FamilyName)
	reds := r.PartyAddress("Reds")

	c := newTestClient(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/state/" + reds.String():
			_, _ = w.Write([]byte(`{"data": "Mw==", "head": "f00d"}`))
		case "/state/" + r.PartiesTable().String():
			_, _ = w.Write([]byte(`{"head": "f00d"}`))
		case "/state/" + r.VotersTable().String():
			_, _ = w.Write([]byte(`{"data": "%%%"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": {"code": 75, "title": "State Not Found"}}`))
		}
	})

	raw, err := c.State(context.Background(), reds)
	require.NoError(t, err)
	assert.Equal(t, "3", string(raw))

	_, err = c.State(context.Background(), r.PartyAddress("Unknown"))
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.State(context.Background(), r.PartiesTable())
	assert.True(t, IsDecode(err))

	_, err = c.State(context.Background(), r.VotersTable())
	assert.True(t, IsDecode(err))

	_, err = c.State(context.Background(), "not-an-address")
	assert.Error(t, err)
}

func TestWaitSeconds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(1), waitSeconds(0))
	assert.Equal(t, int64(1), waitSeconds(200*time.Millisecond))
	assert.Equal(t, int64(5), waitSeconds(5*time.Second))
	assert.Equal(t, int64(5), waitSeconds(4001*time.Millisecond))
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mock provides an in-process ledger gateway for tests.
package mock

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/transaction"
	"go.uber.org/atomic"
)

// Gateway serves the batch, batch status and state endpoints of the ledger
// REST gateway. Submitted batch lists are recorded.
type Gateway struct {
	Server *httptest.Server

	mu sync.Mutex
	// status is reported for every batch status request.
	status string
	// submitCode, when set, rejects submissions with that status code.
	submitCode int
	state      map[string]string
	submitted  []*transaction.BatchList
	polls      atomic.Int32
}

func NewGateway() *Gateway {
	g := &Gateway{
		status: "COMMITTED",
		state:  map[string]string{},
	}
	r := mux.NewRouter()
	r.HandleFunc("/batches", g.submit).Methods(http.MethodPost)
	r.HandleFunc("/batch_statuses", g.batchStatuses).Methods(http.MethodGet)
	r.HandleFunc("/state/{address}", g.readState).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "unknown endpoint")
	})
	g.Server = httptest.NewServer(r)
	return g
}

func (g *Gateway) URL() string {
	return g.Server.URL
}

func (g *Gateway) Close() {
	g.Server.Close()
}

func (g *Gateway) SetStatus(status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
}

func (g *Gateway) RejectSubmissions(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitCode = code
}

// SetState stores value at addr, served base64 encoded.
func (g *Gateway) SetState(addr string, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state[addr] = value
}

// Submitted returns the batch lists received so far.
func (g *Gateway) Submitted() []*transaction.BatchList {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*transaction.BatchList(nil), g.submitted...)
}

func (g *Gateway) Polls() int {
	return int(g.polls.Load())
}

func (g *Gateway) submit(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.submitCode != 0 {
		writeError(w, g.submitCode, "Submitted Batches Invalid")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := transaction.UnmarshalBatchList(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.submitted = append(g.submitted, list)
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, `{"link": "%s/batch_statuses?id=%s"}`, g.Server.URL, strings.Join(list.IDs(), ","))
}

func (g *Gateway) batchStatuses(w http.ResponseWriter, r *http.Request) {
	g.polls.Inc()
	g.mu.Lock()
	status := g.status
	g.mu.Unlock()
	fmt.Fprintf(w, `{"data": [{"id": "%s", "status": "%s", "invalid_transactions": []}]}`, r.URL.Query().Get("id"), status)
}

func (g *Gateway) readState(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	value, ok := g.state[mux.Vars(r)["address"]]
	g.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "There is no state data at the address specified.")
		return
	}
	fmt.Fprintf(w, `{"data": "%s", "head": "0"}`, base64.StdEncoding.EncodeToString([]byte(value)))
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error": {"code": %d, "title": "%s", "message": "%s"}}`, code, http.StatusText(code), message)
}

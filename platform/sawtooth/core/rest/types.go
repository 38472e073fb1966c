/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

// Batch status values reported by the gateway.
const (
	StatusPending   = "PENDING"
	StatusCommitted = "COMMITTED"
	StatusInvalid   = "INVALID"
	StatusUnknown   = "UNKNOWN"
)

// SubmitResponse is the answer to a batch submission.
type SubmitResponse struct {
	// Link points to the status of the submitted batches.
	Link string `yaml:"link"`
}

// InvalidTransaction describes why a transaction of an INVALID batch was rejected.
type InvalidTransaction struct {
	ID           string `yaml:"id"`
	Message      string `yaml:"message"`
	ExtendedData string `yaml:"extended_data"`
}

type BatchStatus struct {
	ID                  string               `yaml:"id"`
	Status              string               `yaml:"status"`
	InvalidTransactions []InvalidTransaction `yaml:"invalid_transactions"`
}

type batchStatusesResponse struct {
	Data []BatchStatus `yaml:"data"`
	Link string        `yaml:"link"`
}

type stateResponse struct {
	Data *string `yaml:"data"`
	Head string  `yaml:"head"`
}

type errorResponse struct {
	Error *struct {
		Code    int    `yaml:"code"`
		Title   string `yaml:"title"`
		Message string `yaml:"message"`
	} `yaml:"error"`
}

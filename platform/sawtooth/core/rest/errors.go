/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"fmt"
	"net/http"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
)

// ErrNotFound is returned when the gateway has no value at the requested state address.
var ErrNotFound = errors.New("not found")

// TransportError reports a request that could not be sent or that the
// gateway answered with a non-2xx status.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Message is the error message reported by the gateway, if any.
	Message string
	// Err is the connection level failure, nil when the gateway answered.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to connect to [%s]: %v", e.URL, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s [%s] failed: %s: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("%s [%s] failed: %s", e.Method, e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) NotFound() bool {
	return e.Err == nil && e.StatusCode == http.StatusNotFound
}

// DecodeError reports a gateway response whose body does not have the expected shape.
type DecodeError struct {
	URL  string
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from [%s]: %v, response [%s]", e.URL, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err was caused by a TransportError.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}

// IsDecode reports whether err was caused by a DecodeError.
func IsDecode(err error) bool {
	var d *DecodeError
	return errors.As(err, &d)
}

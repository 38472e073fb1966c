/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/services/logging"
	"github.com/hyperledger-labs/voting-client/platform/common/utils"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gopkg.in/yaml.v2"
)

var logger = logging.MustGetLogger("voting.rest")

const (
	// DefaultURL is the gateway of a local development network.
	DefaultURL = "http://rest-api:8008"

	contentTypeOctetStream = "application/octet-stream"
	// maxBodyInError bounds the response excerpt kept in errors and logs
	maxBodyInError = 512
)

// Config models the configuration of the gateway client
type Config struct {
	// URL of the gateway, e.g. http://rest-api:8008
	URL string
	// RequestTimeout bounds every request. Status requests get the requested
	// wait on top of it. Zero means no bound besides the caller's context.
	RequestTimeout time.Duration
	// Transport overrides the http transport, mainly for tests.
	Transport http.RoundTripper
}

// Client talks to the REST gateway of the ledger.
// It is safe for concurrent use.
type Client struct {
	c       *http.Client
	url     string
	timeout time.Duration
}

// NewClient returns a new gateway client
func NewClient(config *Config) (*Client, error) {
	base := strings.TrimRight(config.URL, "/")
	if base == "" {
		base = DefaultURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid gateway url [%s]", config.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid gateway url [%s]: scheme must be http or https", config.URL)
	}
	transport := config.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		c: &http.Client{
			Transport: otelhttp.NewTransport(transport),
		},
		url:     base,
		timeout: config.RequestTimeout,
	}, nil
}

// URL returns the gateway base url.
func (c *Client) URL() string {
	return c.url
}

// SubmitBatches posts a serialized batch list. It is never retried.
func (c *Client) SubmitBatches(ctx context.Context, batchList []byte) (*SubmitResponse, error) {
	ctx, cancel := c.withTimeout(ctx, 0)
	defer cancel()

	u := c.url + "/batches"
	body, err := c.req(ctx, http.MethodPost, u, batchList, contentTypeOctetStream)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed submitting batches")
	}
	resp := &SubmitResponse{}
	if err := decode(u, body, resp); err != nil {
		return nil, err
	}
	logger.Infof("batches submitted, status at [%s]", resp.Link)
	return resp, nil
}

// BatchStatus returns the status of a batch. The gateway may hold the request
// for up to wait before answering with PENDING.
func (c *Client) BatchStatus(ctx context.Context, batchID string, wait time.Duration) (*BatchStatus, error) {
	ctx, cancel := c.withTimeout(ctx, wait)
	defer cancel()

	q := url.Values{}
	q.Set("id", batchID)
	q.Set("wait", fmt.Sprintf("%d", waitSeconds(wait)))
	u := c.url + "/batch_statuses?" + q.Encode()
	body, err := c.req(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return nil, errors.WithMessagef(err, "failed querying status of batch [%s]", short(batchID))
	}
	resp := &batchStatusesResponse{}
	if err := decode(u, body, resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, &DecodeError{URL: u, Body: excerpt(body), Err: errors.New("no batch status")}
	}
	for i := range resp.Data {
		if resp.Data[i].ID == batchID {
			return &resp.Data[i], nil
		}
	}
	return &resp.Data[0], nil
}

// State returns the raw value stored at addr. ErrNotFound is returned when no
// value exists at addr.
func (c *Client) State(ctx context.Context, addr address.Address) ([]byte, error) {
	if err := address.Validate(addr); err != nil {
		return nil, err
	}
	ctx, cancel := c.withTimeout(ctx, 0)
	defer cancel()

	u := c.url + "/state/" + addr.String()
	body, err := c.req(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		var t *TransportError
		if errors.As(err, &t) && t.NotFound() {
			return nil, errors.Wrapf(ErrNotFound, "state [%s]", addr)
		}
		return nil, errors.WithMessagef(err, "failed reading state [%s]", addr)
	}
	resp := &stateResponse{}
	if err := decode(u, body, resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &DecodeError{URL: u, Body: excerpt(body), Err: errors.New("missing data")}
	}
	raw, err := base64.StdEncoding.DecodeString(*resp.Data)
	if err != nil {
		return nil, &DecodeError{URL: u, Body: excerpt(body), Err: err}
	}
	return raw, nil
}

func (c *Client) withTimeout(ctx context.Context, wait time.Duration) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout+wait)
}

func (c *Client) req(ctx context.Context, method string, u string, in []byte, contentType string) ([]byte, error) {
	var reader io.Reader
	if in != nil {
		reader = bytes.NewReader(in)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create http request to [%s], input length [%d]", u, len(in))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	logger.Debugf("send http request [%s] to [%s], input length [%d]", method, u, len(in))

	resp, err := c.c.Do(req)
	if err != nil {
		logger.Debugf("failed to connect to [%s]: %v", u, err)
		return nil, &TransportError{Method: method, URL: u, Err: err}
	}
	defer utils.CloseMute(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: u, StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debugf("error [%d] from [%s]: [%s]", resp.StatusCode, u, excerpt(body))
		return nil, &TransportError{
			Method:     method,
			URL:        u,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    errorMessage(body),
		}
	}
	return body, nil
}

// decode parses a JSON or YAML response body into out.
func decode(u string, body []byte, out interface{}) error {
	if err := yaml.Unmarshal(body, out); err != nil {
		return &DecodeError{URL: u, Body: excerpt(body), Err: err}
	}
	return nil
}

func errorMessage(body []byte) string {
	resp := &errorResponse{}
	if err := yaml.Unmarshal(body, resp); err != nil || resp.Error == nil {
		return ""
	}
	if resp.Error.Message != "" {
		return resp.Error.Message
	}
	return resp.Error.Title
}

// waitSeconds rounds up to whole seconds, the unit of the gateway, and never
// asks for less than one second.
func waitSeconds(wait time.Duration) int64 {
	s := int64(math.Ceil(wait.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

func excerpt(body []byte) string {
	if len(body) > maxBodyInError {
		return string(body[:maxBodyInError]) + "..."
	}
	return string(body)
}

func short(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package voting

import (
	"time"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/services/config"
	"github.com/hyperledger-labs/voting-client/platform/common/services/logging"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/address"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/finality"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/payload"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/rest"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/signer"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/transaction"
	"github.com/prometheus/client_golang/prometheus"
)

// Configuration keys
const (
	GatewayURLKey      = "gateway.url"
	GatewayTimeoutKey  = "gateway.timeout"
	WaitKey            = "wait"
	PayloadEncodingKey = "payload.encoding"
	KeyFileKey         = "signer.keyfile"
	LogFileKey         = "logging.file"
	LogSpecKey         = "logging.spec"
	LogFormatKey       = "logging.format"
)

// Defaults returns the default value of every configuration key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		GatewayURLKey:      rest.DefaultURL,
		GatewayTimeoutKey:  "30s",
		WaitKey:            DefaultWait.String(),
		PayloadEncodingKey: payload.CSVEncoding,
		KeyFileKey:         "",
		LogFileKey:         "client.log",
		LogSpecKey:         "info",
		LogFormatKey:       logging.DefaultFormat,
	}
}

// Config is the configuration of the voting client.
type Config struct {
	GatewayURL     string
	GatewayTimeout time.Duration
	// Wait bounds the time write actions wait for a commit. Zero or less
	// returns right after submission.
	Wait            time.Duration
	PayloadEncoding string
	// KeyFile holds the hex encoded signing key. When empty a fresh key is
	// generated for the process.
	KeyFile   string
	LogFile   string
	LogSpec   string
	LogFormat string
}

func NewConfig(p *config.Provider) *Config {
	return &Config{
		GatewayURL:      p.GetString(GatewayURLKey),
		GatewayTimeout:  p.GetDuration(GatewayTimeoutKey),
		Wait:            p.GetDuration(WaitKey),
		PayloadEncoding: p.GetString(PayloadEncodingKey),
		KeyFile:         p.GetPath(KeyFileKey),
		LogFile:         p.GetPath(LogFileKey),
		LogSpec:         p.GetString(LogSpecKey),
		LogFormat:       p.GetString(LogFormatKey),
	}
}

// Signer loads the signing identity from the key file, or generates an
// ephemeral one when no key file is configured.
func (c *Config) Signer() (signer.Signer, error) {
	if len(c.KeyFile) == 0 {
		logger.Debugf("no key file configured, using an ephemeral key")
		return signer.NewRandom()
	}
	s, err := signer.FromHexFile(c.KeyFile)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed loading signing key")
	}
	return s, nil
}

// New wires a Service from c. Metrics are registered with reg when not nil.
func New(c *Config, s signer.Signer, reg prometheus.Registerer) (*Service, error) {
	encoding, err := payload.ByName(c.PayloadEncoding)
	if err != nil {
		return nil, err
	}
	gateway, err := rest.NewClient(&rest.Config{
		URL:            c.GatewayURL,
		RequestTimeout: c.GatewayTimeout,
	})
	if err != nil {
		return nil, err
	}
	resolver := address.NewResolver(address.FamilyName)
	builder := transaction.NewBuilder(address.FamilyName, transaction.DefaultFamilyVersion, s, transaction.WithEncoding(encoding))
	fin := finality.NewClient(gateway, finality.WithMetrics(finality.NewMetrics(reg)))

	logger.Debugf("voting client for [%s], signer [%s], payload encoding [%s]", gateway.URL(), s.PublicKeyHex(), encoding.Name())
	return NewService(resolver, builder, fin, gateway, c.Wait), nil
}

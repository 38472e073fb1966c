/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package voting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperledger-labs/voting-client/platform/common/services/config"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/rest"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/signer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	p, err := config.NewProvider("", Defaults())
	require.NoError(t, err)

	c := NewConfig(p)
	assert.Equal(t, rest.DefaultURL, c.GatewayURL)
	assert.Equal(t, 30*time.Second, c.GatewayTimeout)
	assert.Equal(t, 5*time.Second, c.Wait)
	assert.Equal(t, "csv", c.PayloadEncoding)
	assert.Equal(t, "client.log", c.LogFile)
	assert.Equal(t, "info", c.LogSpec)
	assert.Empty(t, c.KeyFile)
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "voting.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("gateway:\n  url: http://validator:8008\nwait: 2s\nsigner:\n  keyfile: client.priv\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.priv"), []byte(testKeyHex+"\n"), 0o600))

	p, err := config.NewProvider(cfg, Defaults())
	require.NoError(t, err)
	c := NewConfig(p)
	assert.Equal(t, "http://validator:8008", c.GatewayURL)
	assert.Equal(t, 2*time.Second, c.Wait)
	assert.Equal(t, filepath.Join(dir, "client.priv"), c.KeyFile)
	// relative to the config file as well
	assert.Equal(t, filepath.Join(dir, "client.log"), c.LogFile)

	s, err := c.Signer()
	require.NoError(t, err)
	expected, err := signer.FromHex(testKeyHex)
	require.NoError(t, err)
	assert.Equal(t, expected.PublicKeyHex(), s.PublicKeyHex())
}

func TestConfigSigner(t *testing.T) {
	t.Parallel()

	s1, err := (&Config{}).Signer()
	require.NoError(t, err)
	s2, err := (&Config{}).Signer()
	require.NoError(t, err)
	assert.NotEqual(t, s1.PublicKeyHex(), s2.PublicKeyHex())

	_, err = (&Config{KeyFile: filepath.Join(t.TempDir(), "missing.priv")}).Signer()
	assert.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	s, err := signer.FromHex(testKeyHex)
	require.NoError(t, err)

	_, err = New(&Config{GatewayURL: rest.DefaultURL, PayloadEncoding: "json"}, s, nil)
	assert.Error(t, err)
	_, err = New(&Config{GatewayURL: "ftp://rest-api", PayloadEncoding: "csv"}, s, nil)
	assert.Error(t, err)

	reg := prometheus.NewRegistry()
	_, err = New(&Config{GatewayURL: rest.DefaultURL}, s, reg)
	require.NoError(t, err)
	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

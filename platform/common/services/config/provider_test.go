/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = map[string]interface{}{
	"gateway.url":      "http://rest-api:8008",
	"wait":             "5s",
	"payload.encoding": "csv",
	"logging.file":     "client.log",
}

func TestDefaults(t *testing.T) {
	p, err := NewProvider("", defaults)
	require.NoError(t, err)

	assert.Equal(t, "http://rest-api:8008", p.GetString("gateway.url"))
	assert.Equal(t, 5*time.Second, p.GetDuration("wait"))
	assert.Equal(t, "client.log", p.GetPath("logging.file"))
	assert.Empty(t, p.ConfigFileUsed())
	assert.False(t, p.IsSet("signer.keyfile"))
}

func TestReadFile(t *testing.T) {
	p, err := NewProvider("./testdata/voting.yaml", defaults)
	require.NoError(t, err)

	assert.Equal(t, "http://validator-0:8008", p.GetString("gateway.url"))
	assert.Equal(t, 20*time.Second, p.GetDuration("gateway.timeout"))
	assert.Equal(t, 7*time.Second, p.GetDuration("wait"))
	assert.Equal(t, "tagged", p.GetString("payload.encoding"))
	assert.Equal(t, "debug", p.GetString("logging.spec"))

	abs, _ := filepath.Abs("testdata/keys/client.priv")
	got, _ := filepath.Abs(p.GetPath("signer.keyfile"))
	assert.Equal(t, abs, got)
	// untouched by the file
	assert.Equal(t, "client.log", p.GetString("logging.file"))
}

func TestMissingFile(t *testing.T) {
	_, err := NewProvider("./testdata/missing.yaml", defaults)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("VOTING_GATEWAY_URL", "http://from-env:8008")
	t.Setenv("VOTING_WAIT", "1s")

	p, err := NewProvider("./testdata/voting.yaml", defaults)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8008", p.GetString("gateway.url"))
	assert.Equal(t, time.Second, p.GetDuration("wait"))
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("VOTING_GATEWAY_URL", "http://from-env:8008")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("url", "http://flag-default:8008", "")
	p, err := NewProvider("", defaults)
	require.NoError(t, err)
	require.NoError(t, p.BindFlag("gateway.url", flags.Lookup("url")))

	// an unset flag does not shadow the environment
	assert.Equal(t, "http://from-env:8008", p.GetString("gateway.url"))

	require.NoError(t, flags.Parse([]string{"--url", "http://from-flag:8008"}))
	assert.Equal(t, "http://from-flag:8008", p.GetString("gateway.url"))

	assert.Error(t, p.BindFlag("wait", flags.Lookup("missing")))
}

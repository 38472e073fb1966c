/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// CmdRoot is the prefix of the environment variables overriding configuration
// keys. Example: VOTING_GATEWAY_URL sets gateway.url.
const CmdRoot = "voting"

// Provider resolves configuration keys from, in priority order, bound command
// line flags, environment variables, the configuration file and the defaults.
type Provider struct {
	Backend *viper.Viper
}

// NewProvider returns a provider backed by configFile, which may be empty.
func NewProvider(configFile string, defaults map[string]interface{}) (*Provider, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(CmdRoot)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(configFile) != 0 {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithMessagef(err, "error when reading config file [%s]", configFile)
		}
	}
	return &Provider{Backend: v}, nil
}

// BindFlag makes an explicitly set flag override key.
func (p *Provider) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return errors.Errorf("no flag to bind to [%s]", key)
	}
	if err := p.Backend.BindPFlag(key, flag); err != nil {
		return errors.Wrapf(err, "failed binding flag [%s] to [%s]", flag.Name, key)
	}
	return nil
}

func (p *Provider) GetString(key string) string {
	return p.Backend.GetString(key)
}

func (p *Provider) GetDuration(key string) time.Duration {
	return p.Backend.GetDuration(key)
}

func (p *Provider) IsSet(key string) bool {
	return p.Backend.IsSet(key)
}

func (p *Provider) ConfigFileUsed() string {
	return p.Backend.ConfigFileUsed()
}

// GetPath returns the path stored at key. Relative paths are resolved against
// the directory of the configuration file.
func (p *Provider) GetPath(key string) string {
	path := p.Backend.GetString(key)
	if path == "" {
		return ""
	}
	if p.ConfigFileUsed() == "" {
		return path
	}
	return TranslatePath(filepath.Dir(p.ConfigFileUsed()), path)
}

func TranslatePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(base, p)
}

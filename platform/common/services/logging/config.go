/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"io"

	"github.com/hyperledger/fabric-lib-go/common/flogging"
)

// DefaultFormat is used when Config.Format is empty. Log files are read by
// humans, so the color verbs of the fabric default are left out.
const DefaultFormat = "%{time:2006-01-02 15:04:05.000 MST} [%{module}] %{shortfunc} -> %{level:.4s} %{message}"

type Config struct {
	// Format is the log record format specifier. If the spec is the string
	// "json", log records will be formatted as JSON.
	Format string
	// LogSpec determines the log levels that are enabled, e.g. "info" or
	// "voting.rest=debug:info".
	//
	// If LogSpec is not provided, loggers will be enabled at the INFO level.
	LogSpec string
	// Writer is the sink for encoded and formatted log records.
	//
	// If a Writer is not provided, os.Stderr will be used as the log sink.
	Writer io.Writer
}

func Init(c Config) {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	flogging.Init(flogging.Config{
		Format:  c.Format,
		LogSpec: c.LogSpec,
		Writer:  c.Writer,
	})
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package cmd implements the vote command line client.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"github.com/hyperledger-labs/voting-client/platform/common/services/config"
	"github.com/hyperledger-labs/voting-client/platform/common/services/logging"
	"github.com/hyperledger-labs/voting-client/platform/common/utils"
	"github.com/hyperledger-labs/voting-client/platform/sawtooth/core/rest"
	"github.com/hyperledger-labs/voting-client/platform/voting"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

var logger = logging.MustGetLogger("voting.cmd")

// NoValue is printed for lookups the ledger holds no value for.
const NoValue = "no value found"

type app struct {
	out        io.Writer
	configFile string
	svc        *voting.Service
	registry   *prometheus.Registry
	logFile    *os.File
}

// Execute runs the client with args, without the program name, and returns
// the process exit code. Result lines and errors are written to out.
func Execute(ctx context.Context, args []string, out io.Writer) int {
	a := &app{out: out}
	defer a.close()

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	if err := root.ExecuteContext(ctx); err != nil {
		return a.fail(err)
	}
	return ExitOK
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vote",
		Short:         "Voting ledger client.",
		Long:          `Adds parties, casts votes and reads the tallies of the voting ledger.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(cmd, "Enter a command.")
			}
			return usageError(cmd, fmt.Sprintf("unknown command [%s]", args[0]))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(cmd, err.Error())
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "Specifies the config file to load the configuration from")
	flags.StringP("url", "U", rest.DefaultURL, "Sets the url of the ledger REST gateway")
	flags.Duration("wait", voting.DefaultWait, "Sets how long to wait for a submitted batch to be committed")
	flags.String("key", "", "Sets the file holding the hex encoded signing key, a fresh key is used when empty")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.init(flags)
	}

	root.AddCommand(
		a.addPartyCmd(),
		a.voteForCmd(),
		a.voteCountCmd(),
		a.listPartiesCmd(),
		a.listVotersCmd(),
	)
	return root
}

// init loads the configuration and wires the voting service.
func (a *app) init(flags *pflag.FlagSet) error {
	p, err := config.NewProvider(a.configFile, voting.Defaults())
	if err != nil {
		return err
	}
	for key, name := range map[string]string{
		voting.GatewayURLKey: "url",
		voting.WaitKey:       "wait",
		voting.KeyFileKey:    "key",
	} {
		if err := p.BindFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	c := voting.NewConfig(p)

	if err := a.initLogging(c); err != nil {
		return err
	}

	s, err := c.Signer()
	if err != nil {
		return err
	}
	a.registry = prometheus.NewRegistry()
	a.svc, err = voting.New(c, s, a.registry)
	return err
}

func (a *app) initLogging(c *voting.Config) error {
	logConfig := logging.Config{
		Format:  c.LogFormat,
		LogSpec: c.LogSpec,
		Writer:  io.Discard,
	}
	if len(c.LogFile) != 0 {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrapf(err, "failed opening log file [%s]", c.LogFile)
		}
		a.logFile = f
		logConfig.Writer = f
	}
	logging.Init(logConfig)
	return nil
}

func (a *app) close() {
	a.logMetrics()
	if a.logFile != nil {
		utils.CloseMute(a.logFile)
	}
}

// logMetrics writes the submission metrics of the run to the debug log in the
// text exposition format.
func (a *app) logMetrics() {
	if a.registry == nil || !logger.IsEnabledFor(zapcore.DebugLevel) {
		return
	}
	mfs, err := a.registry.Gather()
	if err != nil {
		logger.Warnf("failed gathering metrics: %v", err)
		return
	}
	buf := &bytes.Buffer{}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(buf, mf); err != nil {
			logger.Warnf("failed encoding metric [%s]: %v", mf.GetName(), err)
			return
		}
	}
	logger.Debugf("client metrics:\n%s", buf.String())
}

func (a *app) fail(err error) int {
	var usage *UsageError
	if errors.As(err, &usage) {
		a.println(usage.Message)
		if usage.Usage != "" {
			a.println("Usage:", usage.Usage)
		}
		return ExitUsage
	}
	var notCommitted *NotCommittedError
	if !errors.As(err, &notCommitted) {
		logger.Errorf("command failed: %v", err)
		a.println(err)
	}
	return ExitFailure
}

func (a *app) println(v ...interface{}) {
	_, _ = fmt.Fprintln(a.out, v...)
}

func usageError(cmd *cobra.Command, message string) error {
	return &UsageError{Message: message, Usage: cmd.UseLine()}
}

// exactArgs requires one argument per name.
func exactArgs(hint string, names ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(names) {
			logger.Debugf("[%s] not entered", names[len(args)])
			return usageError(cmd, hint)
		}
		if len(args) > len(names) {
			return usageError(cmd, fmt.Sprintf("unexpected arguments %v", args[len(names):]))
		}
		return nil
	}
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyperledger-labs/voting-client/platform/voting/cmd"
)

func main() {
	// Interrupting the client stops waiting for the outcome of a submitted
	// batch, it does not withdraw the batch.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Execute(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// Package main provides the tx CLI, a wrapper around "wormhole send"
//
// tx:
//   - generates a numeric pairing code (or takes one with --code)
//   - prints the command the receiving side has to run
//   - runs wormhole send and relays its output without the noise
//   - with --multi keeps offering the same file to the next receiver
//
// Any option tx does not know is handed to wormhole send unchanged.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Execute(ctx)
	stop()
	os.Exit(exitCode(err))
}

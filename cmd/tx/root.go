// Package main provides the CLI commands for tx
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thanhpk/randstr"

	"wormholeTx/pkg/config"
	"wormholeTx/pkg/sender"
)

// rootCmd represents the base command. Flag parsing is left to
// sender.ParseArgs because unknown options must reach wormhole send as-is.
var rootCmd = &cobra.Command{
	Use:   "tx <file_or_dir> [flags] [wormhole send flags...]",
	Short: "Sends a file using magic-wormhole",
	Long: `Sends a file or directory using magic-wormhole.

A numeric code is generated (or taken from --code), the command for the
receiving computer is printed, and "wormhole send" is run with that code.
Any unknown options are passed to "wormhole send".

Configuration is read from tx.yaml (., ~/.config/tx or $TX_CONFIG) and the
TX_WORMHOLE_BIN, TX_CODE_LENGTH, TX_LOG_LEVEL and TX_LOG_FORMAT variables.`,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSend(cmd, args)
	},
}

// Execute runs the root command. This is called by main.main().
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.GetConfigPath(""))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setupLogging(cfg)

	opts, rest, err := sender.ParseArgs(args, cfg.Code.Length)
	if err != nil {
		return err
	}

	if opts.Version {
		printVersion(cmd.OutOrStdout())
		return nil
	}

	log := logrus.WithField("session", randstr.Hex(8))
	runner := sender.NewRunner(cfg.Wormhole.Binary, cmd.OutOrStdout(), log)

	if opts.Help {
		printHelp(cmd, runner, cfg.Code.Length)
		return nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	req, err := sender.NewResolver().Resolve(opts, rest, dir)
	if err != nil {
		return err
	}
	log.Debugf("sending %s (dir=%v, size=%d) with %d-digit code", req.Target, req.Info.IsDir, req.Info.Size, len(req.Code))

	return runner.Run(cmd.Context(), req)
}

// printHelp prints tx's own usage followed by the help of wormhole send.
func printHelp(cmd *cobra.Command, runner *sender.Runner, defaultCodeLength int) {
	var opts sender.Options
	fs := sender.NewFlagSet(&opts, defaultCodeLength)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n\nFlags:\n%s\n", cmd.Long, cmd.Use, fs.FlagUsages())

	help, err := runner.WrappedHelp(cmd.Context())
	if err != nil {
		logrus.Warnf("could not get wormhole help: %v", err)
		return
	}

	fmt.Fprint(out, "\n\n"+
		"###########################################################\n"+
		"## Any unknown options will be passed to \"wormhole send\" ##\n"+
		"###########################################################\n\n"+
		help)
}

// exitCode reports err to the user and maps it to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var (
		usageErr       *sender.UsageError
		pathErr        *sender.PathNotFoundError
		unsupportedErr *sender.UnsupportedOptionError
		exitErr        *sender.ExitError
	)
	switch {
	case errors.Is(err, sender.ErrInterrupted):
		// Ctrl+C: no message
	case errors.As(err, &exitErr):
		logrus.Debugf("%v", err)
	case errors.As(err, &usageErr):
		reportUsageError(os.Stderr, usageErr)
	case errors.As(err, &pathErr):
		fmt.Println(pathErr.Error())
	case errors.As(err, &unsupportedErr):
		logrus.Warn(unsupportedErr.Error())
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return sender.ExitCode(err)
}

func reportUsageError(w io.Writer, err *sender.UsageError) {
	use := strings.SplitN(rootCmd.Use, " ", 2)
	fmt.Fprintf(w, "usage: %s\n%s: error: %s\n", rootCmd.Use, use[0], err.Msg)
}

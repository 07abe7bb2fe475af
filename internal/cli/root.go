/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package cli implements the openwallet command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	verbose bool
	timeout time.Duration
	maxSize string

	cfg    *Config
	logger *logrus.Logger
}

// NewRootCommand builds the command tree reading from in and writing to out and errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "openwallet",
		Short: "Decrypt password-protected wallet files",
		Long: `openwallet reads a wallet file, checks its format marker, derives the key
from your password and prints the decrypted content.

Commands:
  open       Decrypt a wallet and print its content
  inspect    Show the header of a wallet without a password
  version    Print the version

Environment:
  OPENWALLET_LOG_LEVEL   log level (default warn)
  OPENWALLET_LOG_FORMAT  text or json (default text)
  OPENWALLET_TIMEOUT     overall deadline, e.g. 30s (default none)
  OPENWALLET_MAX_SIZE    largest wallet to buffer, e.g. 16MiB (default 64MiB)`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging on stderr")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "overall deadline for the operation (overrides OPENWALLET_TIMEOUT)")
	root.PersistentFlags().StringVar(&a.maxSize, "max-size", "", "largest wallet to buffer, e.g. 16MiB (overrides OPENWALLET_MAX_SIZE)")

	root.AddCommand(
		a.newOpenCommand(),
		a.newInspectCommand(),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg, a.verbose, a.errOut)

	if !cmd.Flags().Changed("timeout") {
		a.timeout = cfg.Timeout
	}
	if !cmd.Flags().Changed("max-size") {
		a.maxSize = cfg.MaxSize
	}
	return nil
}

// withTimeout applies the configured deadline, if any.
func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "openwallet %s\n", Version)
		},
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCommand(in, out, errOut)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

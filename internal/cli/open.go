/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gitrgoliveira/go-openwallet"
	"github.com/gitrgoliveira/go-openwallet/secure"
)

func (a *app) newOpenCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "open <wallet>",
		Short: "Decrypt a wallet and print its content",
		Long: `Decrypt a wallet file and print the secret content to stdout.

Without --password the password is prompted for on a terminal, or read
as a single line from stdin otherwise.

Examples:
  openwallet open test.wallet
  openwallet open test.wallet --password hunter2
  echo hunter2 | openwallet open test.wallet --timeout 30s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw []byte
			if cmd.Flags().Changed("password") {
				pw = []byte(password)
			} else {
				var err error
				if pw, err = readPassword(a.in, a.errOut); err != nil {
					return err
				}
			}
			defer secure.Zero(pw)
			return a.runOpen(cmd, args[0], string(pw))
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "wallet password (prompted for when omitted)")
	return cmd
}

func (a *app) runOpen(cmd *cobra.Command, path, password string) error {
	opts := []openwallet.Option{openwallet.WithLogger(a.logger)}
	if a.maxSize != "" {
		opt, err := parseMaxSize(a.maxSize)
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}

	ctx, cancel := a.withTimeout(cmd.Context())
	defer cancel()

	secret, err := openwallet.OpenWallet(ctx, path, password, opts...)
	if err != nil {
		a.logger.WithError(err).WithField("path", path).Debug("open failed")
		return openwallet.SanitizeError(err)
	}

	a.logger.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(secret),
	}).Info("wallet opened")
	fmt.Fprintln(a.out, secret)
	return nil
}

func parseMaxSize(s string) (openwallet.Option, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return nil, fmt.Errorf("invalid max size %q: %w", s, err)
	}
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("invalid max size %q: too large", s)
	}
	return openwallet.WithMaxSize(int64(n))
}

// readPassword prompts without echo on a terminal and otherwise reads one line from in.
func readPassword(in io.Reader, errOut io.Writer) ([]byte, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(errOut, "Wallet password: ")
		defer fmt.Fprintln(errOut)

		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return raw, nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return nil, errors.New("no password given: use --password or pipe it on stdin")
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

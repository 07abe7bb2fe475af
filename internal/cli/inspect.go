/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package cli

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gitrgoliveira/go-openwallet"
)

func (a *app) newInspectCommand() *cobra.Command {
	var expectSum string

	cmd := &cobra.Command{
		Use:   "inspect <wallet>",
		Short: "Show the header of a wallet without a password",
		Long: `Show the IV, ciphertext size and SHA-256 of a wallet file. No password is
needed and no key is derived.

Examples:
  openwallet inspect test.wallet
  openwallet inspect test.wallet --sha256 9f86d08...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(args[0], expectSum)
		},
	}

	cmd.Flags().StringVar(&expectSum, "sha256", "", "fail unless the file has this hex SHA-256")
	return cmd
}

func (a *app) runInspect(path, expectSum string) error {
	h, err := openwallet.Inspect(path)
	if err != nil {
		a.logger.WithError(err).WithField("path", path).Debug("inspect failed")
		return openwallet.SanitizeError(err)
	}

	layout := "valid"
	if !h.Valid() {
		layout = "invalid (ciphertext is empty or not a whole number of blocks)"
	}

	fmt.Fprintf(a.out, "path:       %s\n", h.Path)
	fmt.Fprintf(a.out, "size:       %s\n", humanize.IBytes(uint64(h.FileSize()))) // #nosec G115 -- sizes are never negative
	fmt.Fprintf(a.out, "iv:         %s\n", hex.EncodeToString(h.IV))
	fmt.Fprintf(a.out, "ciphertext: %s\n", humanize.IBytes(uint64(h.CiphertextSize))) // #nosec G115
	fmt.Fprintf(a.out, "sha256:     %s\n", hex.EncodeToString(h.Checksum))
	fmt.Fprintf(a.out, "layout:     %s\n", layout)

	if expectSum != "" {
		ok, err := openwallet.VerifyChecksumHex(path, expectSum)
		if err != nil {
			return fmt.Errorf("verify --sha256: %w", err)
		}
		if !ok {
			return errors.New("checksum mismatch")
		}
		a.logger.WithField("path", path).Info("checksum verified")
	}
	return nil
}

/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// inspect.go: Password-free wallet header inspection
package core

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	crypto "github.com/gitrgoliveira/go-openwallet/internal/crypto"
)

// Header describes the plaintext part of a wallet file.
type Header struct {
	Path           string
	IV             []byte
	CiphertextSize int64
	Checksum       []byte // SHA-256 of the whole file
}

// Valid reports whether the ciphertext length is a non-zero whole number of blocks.
func (h *Header) Valid() bool {
	return h.CiphertextSize > 0 && h.CiphertextSize%BlockSize == 0
}

// FileSize returns the total size of the wallet file.
func (h *Header) FileSize() int64 {
	return int64(HeaderSize) + h.CiphertextSize
}

func (h *Header) String() string {
	return fmt.Sprintf("%s: iv=%s ciphertext=%s sha256=%s",
		h.Path, hex.EncodeToString(h.IV), humanize.IBytes(uint64(h.CiphertextSize)), hex.EncodeToString(h.Checksum)) // #nosec G115 -- size is never negative
}

// Inspect reads the header of the wallet at path without a password.
// It never derives a key.
func Inspect(path string) (*Header, error) {
	f, err := os.Open(path) // #nosec G304 -- File path provided by caller
	if err != nil {
		return nil, crypto.NewWalletError("inspect", path, "", fmt.Errorf("%w: %w", crypto.ErrFileOpenFailed, err))
	}
	defer f.Close()

	r := bufio.NewReader(f)
	iv, err := ReadHeader(r)
	if err != nil {
		return nil, crypto.NewWalletError("inspect", path, "", asReadError(err))
	}

	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, crypto.NewWalletError("inspect", path, "", asReadError(err))
	}

	sum, err := CalculateChecksum(path)
	if err != nil {
		return nil, crypto.NewWalletError("inspect", path, "", err)
	}

	return &Header{
		Path:           path,
		IV:             iv,
		CiphertextSize: n,
		Checksum:       sum,
	}, nil
}

/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// format.go: Wallet file layout and region readers for go-openwallet
package core

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	crypto "github.com/gitrgoliveira/go-openwallet/internal/crypto"
)

const (
	// FileMagic is the plaintext marker every wallet file starts with.
	FileMagic = "If I pull that off, will you die?\nIt would be extremely painful."
	// PasswordMagic prefixes the plaintext; finding it after decryption proves the password.
	PasswordMagic = "You're a big guy.\nFor you."
	// IVSize is the size of the CBC initialization vector, which is also the KDF salt.
	IVSize = 16
	// BlockSize is the AES block size.
	BlockSize = 16
	// HeaderSize is the plaintext prefix of a wallet file.
	// File format: [64 bytes file magic][16 bytes IV][AES-128-CBC ciphertext...]
	HeaderSize = len(FileMagic) + IVSize
)

// readExact reads exactly n bytes from r. It never consumes more than n bytes.
func readExact(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(io.LimitReader(r, int64(n)), buf)
	switch err {
	case nil:
		return buf, nil
	case io.EOF, io.ErrUnexpectedEOF:
		return nil, fmt.Errorf("%w: need %d bytes, got %d", crypto.ErrTruncatedInput, n, got)
	default:
		return nil, err
	}
}

// readRemainder reads r to EOF, refusing to buffer more than limit bytes.
func readRemainder(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: ciphertext exceeds %s", crypto.ErrWalletTooLarge, humanize.IBytes(uint64(limit))) // #nosec G115 -- limit is validated positive
	}
	return data, nil
}

// ReadHeader consumes the file magic and the IV from r and returns the IV.
// A magic mismatch fails with ErrNotAWalletFile before the IV is read.
func ReadHeader(r io.Reader) ([]byte, error) {
	magic, err := readExact(r, len(FileMagic))
	if err != nil {
		return nil, crypto.WrapError("read file magic", err)
	}
	// Format sniff, not a secret: plain comparison is fine here
	if !bytes.Equal(magic, []byte(FileMagic)) {
		return nil, crypto.ErrNotAWalletFile
	}

	iv, err := readExact(r, IVSize)
	if err != nil {
		return nil, crypto.WrapError("read iv", err)
	}
	return iv, nil
}

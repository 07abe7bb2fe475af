/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package wallettest builds wallet files for tests. It implements the inverse
// of the open pipeline and is not part of the public API.
package wallettest

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"os"
	"path/filepath"
	"testing"

	"github.com/gitrgoliveira/go-openwallet/internal/core"
)

// FixedIV is a deterministic IV for reproducible fixtures.
var FixedIV = []byte("0123456789abcdef")

// Pad applies PKCS#7 padding to a whole number of AES blocks.
func Pad(b []byte) []byte {
	n := core.BlockSize - len(b)%core.BlockSize
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

// EncryptBlocks AES-128-CBC encrypts already padded plaintext.
func EncryptBlocks(key, iv, padded []byte) []byte {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out
}

// Assemble concatenates the file magic, IV and ciphertext.
func Assemble(iv, ciphertext []byte) []byte {
	out := make([]byte, 0, core.HeaderSize+len(ciphertext))
	out = append(out, core.FileMagic...)
	out = append(out, iv...)
	return append(out, ciphertext...)
}

// SealWithKey builds a wallet from an already derived key, skipping the KDF.
// The raw payload is placed after the password marker.
func SealWithKey(key, iv, payload []byte) []byte {
	plaintext := append([]byte(core.PasswordMagic), payload...)
	return Assemble(iv, EncryptBlocks(key, iv, Pad(plaintext)))
}

// Seal builds a complete wallet file for password and content.
func Seal(password, iv []byte, content string) ([]byte, error) {
	key, err := core.DeriveKey(password, iv)
	if err != nil {
		return nil, err
	}
	return SealWithKey(key, iv, []byte(content)), nil
}

// WriteFile writes wallet bytes into a temp directory and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write wallet fixture: %v", err)
	}
	return path
}
